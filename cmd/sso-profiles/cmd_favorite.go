package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/spf13/cobra"
)

var (
	favoriteSet   bool
	favoriteUnset bool
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite [terms...]",
	Short: "Toggle the favorite flag of a profile",
	Long:  "Toggle, set or unset the favorite flag of the profile whose title matches the terms. When several match, you pick one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if favoriteSet && favoriteUnset {
			return fmt.Errorf("--set and --unset are mutually exclusive")
		}
		mode := commands.FavoriteToggle
		switch {
		case favoriteSet:
			mode = commands.FavoriteSet
		case favoriteUnset:
			mode = commands.FavoriteUnset
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		query := strings.Join(args, " ")
		matches, err := commands.List(cmd.Context(), env, commands.ListOptions{Query: query})
		if err != nil {
			return err
		}

		target, err := chooseProfile(matches, query)
		if err != nil {
			return err
		}

		updated, err := commands.SetFavorite(cmd.Context(), env, target, mode)
		if err != nil {
			return err
		}
		fmt.Println(profileLine(updated))
		return nil
	},
}

func init() {
	favoriteCmd.Flags().BoolVar(&favoriteSet, "set", false, "mark as favorite")
	favoriteCmd.Flags().BoolVar(&favoriteUnset, "unset", false, "clear the favorite mark")
}

// chooseProfile returns the single match, or asks the user to pick one.
func chooseProfile(matches []profile.Profile, query string) (profile.Profile, error) {
	switch len(matches) {
	case 0:
		return profile.Profile{}, fmt.Errorf("no profile matches %q", query)
	case 1:
		return matches[0], nil
	}

	options := make([]huh.Option[int], len(matches))
	for i, p := range matches {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", p.Title(), p.PortalDomain), i)
	}

	var choice int
	selectField := huh.NewSelect[int]().
		Title("Which profile?").
		Options(options...).
		Value(&choice)

	if err := huh.NewForm(huh.NewGroup(selectField)).Run(); err != nil {
		return profile.Profile{}, fmt.Errorf("prompt cancelled: %w", err)
	}
	return matches[choice], nil
}
