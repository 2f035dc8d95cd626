package main

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// Catppuccin Mocha palette for chrome; profile dots use the profile colors.
var flavor = catppuccin.Mocha

var (
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorText)

	activeStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorSurface1).
			Bold(true)

	domainStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)
)

// colorDot renders a bullet in the profile's color.
func colorDot(c profile.Color) string {
	hex := c.Hex()
	if hex == "" {
		return domainStyle.Render("○")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// profileLine renders one profile for list output.
func profileLine(p profile.Profile) string {
	var b strings.Builder
	b.WriteString(colorDot(p.Color))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(p.Title()))
	if p.IsFavorite() {
		b.WriteString(" ")
		b.WriteString(favoriteStyle.Render("★"))
	}
	b.WriteString("  ")
	b.WriteString(domainStyle.Render(p.PortalDomain))
	return b.String()
}
