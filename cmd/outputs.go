package cmd

import (
	"os"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/output"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(outputsCmd)
	outputsCmd.SetOut(os.Stdout)
}

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List what can be done with resolved links",
	Run: func(cmd *cobra.Command, args []string) {
		current := viper.GetString(key.DownloadOutput)
		width := util.TerminalWidth(80) - 4

		for i, o := range output.All() {
			name := style.Fg(color.Purple)(o.Name())
			if o.Name() == current {
				name += style.Faint(" (default)")
			}

			cmd.Println(name)
			cmd.Println(indent.String(wordwrap.String(o.Description(), width), 2))

			if i < len(output.All())-1 {
				cmd.Println()
			}
		}
	},
}
