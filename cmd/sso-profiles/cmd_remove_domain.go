package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/spf13/cobra"
)

var removeDomainYes bool

var removeDomainCmd = &cobra.Command{
	Use:   "remove-domain DOMAIN",
	Short: "Forget every profile of a portal domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]

		if !removeDomainYes {
			confirmed := false
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Remove every profile of %s?", domain)).
				Description("Colors and favorites of these profiles are lost.").
				Affirmative("Remove").
				Negative("Cancel").
				Value(&confirmed)
			if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
				return fmt.Errorf("prompt cancelled: %w", err)
			}
			if !confirmed {
				fmt.Println("Nothing removed.")
				return nil
			}
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		removed, err := commands.RemoveDomain(cmd.Context(), env, domain)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d profile(s) of %s.\n", len(removed), domain)
		return nil
	},
}

func init() {
	removeDomainCmd.Flags().BoolVarP(&removeDomainYes, "yes", "y", false, "skip the confirmation prompt")
}
