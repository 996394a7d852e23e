package cmd

import (
	"os"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/resolver"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.Flags().BoolP("raw", "r", false, "Print only format names")
	formatsCmd.SetOut(os.Stdout)
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the formats links can be resolved in",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, name := range resolver.Names() {
				cmd.Println(name)
			}
			return
		}

		var (
			current = viper.GetString(key.DownloadFormat)
			width   = util.TerminalWidth(80) - 4
			formats = resolver.All()
		)

		for i, f := range formats {
			name := style.Fg(color.Purple)(f.Name)
			if f.Name == current {
				name += style.Faint(" (default)")
			}

			cmd.Printf("%s %s\n", style.Bold(f.DisplayName), name)
			cmd.Println(indent.String(wordwrap.String(f.Description, width), 2))

			if i < len(formats)-1 {
				cmd.Println()
			}
		}
	},
}
