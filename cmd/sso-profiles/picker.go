package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// favoriteToggledMsg carries the record saved after a favorite toggle.
type favoriteToggledMsg struct {
	profile profile.Profile
	err     error
}

// toggleFunc persists a favorite toggle and returns the saved record.
type toggleFunc func(profile.Profile) (profile.Profile, error)

// launcher is a quick-launch list: type to filter, enter to pick, ctrl+f to
// toggle the favorite flag. Favorites are listed first.
type launcher struct {
	input   textinput.Model
	all     []profile.Profile
	visible []profile.Profile
	cursor  int
	toggle  toggleFunc
	chosen  *profile.Profile
	err     error
}

func newLauncher(ps []profile.Profile, toggle toggleFunc) launcher {
	input := textinput.New()
	input.Placeholder = "Search profiles"
	input.Prompt = "› "
	input.Focus()

	l := launcher{
		input:  input,
		all:    append([]profile.Profile(nil), ps...),
		toggle: toggle,
	}
	l.refilter()
	return l
}

func (l launcher) Init() tea.Cmd { return textinput.Blink }

func (l launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case favoriteToggledMsg:
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		id := msg.profile.CanonicalID()
		for i := range l.all {
			if l.all[i].CanonicalID() == id {
				l.all[i] = msg.profile
			}
		}
		l.refilter()
		l.moveTo(id)
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			l.chosen = nil
			return l, tea.Quit
		case "up", "ctrl+p":
			if l.cursor > 0 {
				l.cursor--
			}
			return l, nil
		case "down", "ctrl+n":
			if l.cursor < len(l.visible)-1 {
				l.cursor++
			}
			return l, nil
		case "enter":
			if len(l.visible) == 0 {
				return l, nil
			}
			p := l.visible[l.cursor]
			l.chosen = &p
			return l, tea.Quit
		case "ctrl+f":
			if len(l.visible) == 0 || l.toggle == nil {
				return l, nil
			}
			p := l.visible[l.cursor]
			toggle := l.toggle
			return l, func() tea.Msg {
				saved, err := toggle(p)
				return favoriteToggledMsg{profile: saved, err: err}
			}
		}
	}

	var cmd tea.Cmd
	before := l.input.Value()
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != before {
		l.refilter()
		l.cursor = 0
	}
	return l, cmd
}

func (l *launcher) refilter() {
	l.visible = append([]profile.Profile(nil), profile.Filter(l.all, l.input.Value())...)
	profile.SortFavoritesFirst(l.visible)
	if l.cursor >= len(l.visible) {
		l.cursor = max(len(l.visible)-1, 0)
	}
}

func (l *launcher) moveTo(id string) {
	for i, p := range l.visible {
		if p.CanonicalID() == id {
			l.cursor = i
			return
		}
	}
}

func (l launcher) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("  AWS profiles"))
	b.WriteString("\n  ")
	b.WriteString(l.input.View())
	b.WriteString("\n\n")

	if len(l.visible) == 0 {
		b.WriteString(helpStyle.Render("  No matching profile"))
		b.WriteString("\n")
	}
	for i, p := range l.visible {
		line := fmt.Sprintf("%s %s", colorDot(p.Color), p.Title())
		if p.IsFavorite() {
			line += " " + favoriteStyle.Render("★")
		}
		line += "  " + domainStyle.Render(p.PortalDomain)
		if i == l.cursor {
			b.WriteString("  " + activeStyle.Render("›") + " " + line + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}

	if l.err != nil {
		b.WriteString("\n  " + favoriteStyle.Render(l.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  enter: open · ctrl+f: favorite · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the picked profile, or nil if cancelled.
func (l launcher) Chosen() *profile.Profile {
	return l.chosen
}

// runLauncher runs the quick-launch picker and returns the picked profile.
func runLauncher(ps []profile.Profile, toggle toggleFunc) (*profile.Profile, error) {
	model, err := tea.NewProgram(newLauncher(ps, toggle)).Run()
	if err != nil {
		return nil, err
	}
	return model.(launcher).Chosen(), nil
}
