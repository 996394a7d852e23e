// Package cmd implements the dashgrab command-line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().String("icons", "", "Icon variant: emoji, nerd, plain or squares")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("verbose", false, "Print debug logs to stderr")

	rootCmd.PersistentFlags().Bool("tls-fingerprint", false, "Send API requests with a browser TLS fingerprint")
	lo.Must0(viper.BindPFlag(key.NetworkTLSFingerprint, rootCmd.PersistentFlags().Lookup("tls-fingerprint")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.OutOrStdout())
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyVerbose(os.Stderr, lo.Must(cmd.Flags().GetBool("verbose")))
	},
	Short: "Resolve download links of videos and seasons",
	Long: constant.Logo + "\n\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Resolve download links of videos and seasons"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// applyVerbose sends debug logs to w instead of the log file.
func applyVerbose(w io.Writer, verbose bool) {
	if verbose {
		log.SetOutput(w, logrus.DebugLevel)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
