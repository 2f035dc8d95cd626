package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/sso-profiles/internal/commands"
	"github.com/spf13/cobra"
)

var (
	interceptRequestURL string
	interceptOriginURL  string
	interceptResponse   string
	interceptForce      bool
)

var interceptCmd = &cobra.Command{
	Use:   "intercept",
	Short: "Record the profile behind a console federation request",
	Long: `Record the profile behind a federation request made when a profile was
opened from an access portal. With --response, the captured response body is
turned into a console login URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.InterceptRequest{
			RequestURL: interceptRequestURL,
			OriginURL:  interceptOriginURL,
			Force:      interceptForce,
		}
		if interceptResponse != "" {
			data, err := os.ReadFile(interceptResponse)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}
			req.Response = data
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := commands.Intercept(cmd.Context(), env, req)
		if err != nil {
			return err
		}

		if res.Saved {
			fmt.Printf("Saved %s\n", profileLine(res.Profile))
		} else {
			fmt.Printf("Not saved (auto_populate_used_profiles is off): %s\n", res.Profile.Title())
		}
		if res.Container != nil {
			fmt.Printf("Container: %s %s\n", colorDot(res.Container.Color), res.Container.Name)
		}
		if res.LoginURL != "" {
			fmt.Println(res.LoginURL)
		}
		return nil
	},
}

func init() {
	interceptCmd.Flags().StringVar(&interceptRequestURL, "request-url", "", "federation request url")
	interceptCmd.Flags().StringVar(&interceptOriginURL, "origin-url", "", "portal url that issued the request")
	interceptCmd.Flags().StringVar(&interceptResponse, "response", "", "file holding the federation response body")
	interceptCmd.Flags().BoolVar(&interceptForce, "force", false, "save even when auto-population is off")
	_ = interceptCmd.MarkFlagRequired("request-url")
	_ = interceptCmd.MarkFlagRequired("origin-url")
}
