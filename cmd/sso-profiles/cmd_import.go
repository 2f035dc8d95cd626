package main

import (
	"fmt"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/spf13/cobra"
)

var importRescan bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import profiles scraped from an access portal",
	Long: `Import a JSON or YAML list of profiles scraped from an access portal.

With --rescan the file is the complete list for each portal domain it
mentions: profiles of those domains missing from it are removed, while
colors and favorites of the profiles still present are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := commands.ImportFile(cmd.Context(), env, args[0], importRescan)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d profile(s) from %d portal(s).\n", len(res.Stored), len(res.Domains))
		for _, err := range res.Rejected {
			fmt.Printf("  ⚠️  skipped: %v\n", err)
		}
		for _, c := range res.Conflicts {
			fmt.Printf("  ⚠️  %v\n", c)
		}
		if len(res.Pruned) > 0 {
			fmt.Println("Removed profiles no longer listed:")
			for _, p := range res.Pruned {
				fmt.Printf("  - %s (%s)\n", p.Title(), p.PortalDomain)
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importRescan, "rescan", false, "replace each portal domain's profiles with the file's")
}
