package main

import (
	"fmt"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Search profiles interactively and print the chosen one's URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		ps, err := commands.List(ctx, env, commands.ListOptions{})
		if err != nil {
			return err
		}
		if len(ps) == 0 {
			printProfiles(ps)
			return nil
		}

		chosen, err := runLauncher(ps, func(p profile.Profile) (profile.Profile, error) {
			return commands.SetFavorite(ctx, env, p, commands.FavoriteToggle)
		})
		if err != nil {
			return err
		}
		if chosen != nil {
			fmt.Println(chosen.URL)
		}
		return nil
	},
}
