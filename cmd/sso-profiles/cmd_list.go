package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/spf13/cobra"
)

var (
	listFavoritesFirst bool
	listFavoritesOnly  bool
	listJSON           bool
)

var listCmd = &cobra.Command{
	Use:   "list [terms...]",
	Short: "List stored profiles",
	Long:  "List stored profiles sorted by title. Terms narrow the list to titles containing all of them, ignoring case.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		ps, err := commands.List(cmd.Context(), env, commands.ListOptions{
			Query:          strings.Join(args, " "),
			FavoritesFirst: listFavoritesFirst,
			FavoritesOnly:  listFavoritesOnly,
		})
		if err != nil {
			return err
		}

		if listJSON {
			return printJSON(ps)
		}
		printProfiles(ps)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listFavoritesFirst, "favorites-first", false, "show favorites before other profiles")
	listCmd.Flags().BoolVar(&listFavoritesOnly, "favorites", false, "only show favorites")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print profiles as JSON")
}

func printProfiles(ps []profile.Profile) {
	if len(ps) == 0 {
		fmt.Println("No profiles. Run 'sso-profiles import' or open a profile from your portal.")
		return
	}
	for _, p := range ps {
		fmt.Printf("  %s\n", profileLine(p))
	}
}

func printJSON(v any) error {
	if ps, ok := v.([]profile.Profile); ok && ps == nil {
		v = []profile.Profile{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
