package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/ruminaider/sso-profiles/internal/config"
	"github.com/ruminaider/sso-profiles/internal/paths"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sso-profiles",
	Short: "Keep track of AWS IAM Identity Center profiles",
	Long:  "sso-profiles remembers the (account, role) profiles of your AWS access portals, with a color and favorite flag per profile that survive portal rescans.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: list profiles
		return listCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sso-profiles %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "data directory (default ~/.sso-profiles)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(interceptCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(removeDomainCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// openEnv sets up logging from the data directory's config and opens the
// profile store. Callers must Close the result.
func openEnv() (*commands.Env, error) {
	cfg, err := config.Load(paths.ConfigFile(dataDir))
	if err != nil {
		return nil, err
	}
	logger := commands.SetupLogger(os.Stderr, cfg.LogFormat, verbose)
	return commands.Open(dataDir, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
