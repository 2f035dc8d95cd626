package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the profile list whenever it changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Printf("Watching %s (ctrl+c to stop)\n", env.StoragePath())
		return commands.Watch(ctx, env, func(ps []profile.Profile) {
			profile.SortFavoritesFirst(ps)
			fmt.Println()
			fmt.Println(headerStyle.Render(time.Now().Format("15:04:05")))
			printProfiles(ps)
		})
	},
}
