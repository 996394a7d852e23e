package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dashgrab/dashgrab/auth"
	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("sessdata", "", "SESSDATA cookie of a signed in browser session")

	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a session cookie in the system keyring",
	Long: `Store the SESSDATA cookie of a signed in browser session in the system keyring.
Login and subscription qualities are only granted to signed in requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		session := lo.Must(cmd.Flags().GetString("sessdata"))
		if session == "" {
			handleErr(survey.AskOne(&survey.Password{Message: "SESSDATA"}, &session, survey.WithValidator(survey.Required)))
		}

		session = strings.TrimSpace(session)
		if session == "" {
			handleErr(errors.New("empty session"))
		}

		handleErr(auth.SetSession(session))
		cmd.Printf("%s session stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session cookie",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteSession())
		cmd.Printf("%s session removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
