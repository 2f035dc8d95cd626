package main

import (
	"fmt"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert profiles stored in an older layout",
	Long:  "Convert profiles stored by older versions (nested by domain, or keyed by account name) to the current layout. Every other command does this on the fly; this one reports what changed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		report, err := commands.Migrate(cmd.Context(), env)
		if err != nil {
			return err
		}
		if report == nil {
			fmt.Println("Profiles are already in the current layout. No migration needed.")
			return nil
		}

		for _, s := range report.Schemas {
			fmt.Printf("Found %s layout\n", s)
		}
		fmt.Printf("Migrated %d profile(s).\n", len(report.Migrated))
		for _, err := range report.Rejected {
			fmt.Printf("  ⚠️  dropped: %v\n", err)
		}
		return nil
	},
}
