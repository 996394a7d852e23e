package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/input"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/network"
	"github.com/dashgrab/dashgrab/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inputsCmd)
	inputsCmd.Flags().BoolP("items", "l", false, "List the items each matching input yields")
	inputsCmd.SetOut(os.Stdout)
}

var inputsCmd = &cobra.Command{
	Use:   "inputs [url|id]",
	Short: "List input providers, or the ones matching a url",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		providers := input.Registry(input.Cached{Lister: client}, input.HTTPPages{Client: network.Configured()})

		if len(args) == 0 {
			for _, p := range providers {
				cmd.Printf("%s %s\n", style.Fg(color.Purple)(p.Name()), style.Faint(p.DisplayName()))
			}
			return
		}

		u, err := input.ParseTarget(args[0], viper.GetString(key.APIPageBaseURL))
		handleErr(err)

		matching := input.Matching(providers, u)
		if len(matching) == 0 {
			handleErr(fmt.Errorf("no input matches %s", u))
		}

		listItems := lo.Must(cmd.Flags().GetBool("items"))
		for i, p := range matching {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(p.Name()), style.Faint(p.DisplayName()))
			if !listItems {
				continue
			}

			items, err := p.Inputs(cmd.Context(), u)
			handleErr(err)

			cmd.Println(renderTable(
				[]string{"#", "Title", "CID", "Duration"},
				lo.Map(items, func(item *media.InputItem, j int) []string {
					return []string{
						strconv.Itoa(j + 1),
						item.Title,
						strconv.FormatInt(item.CID, 10),
						(time.Duration(item.DurationMs) * time.Millisecond).String(),
					}
				}),
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
			))

			if i < len(matching)-1 {
				cmd.Println()
			}
		}
	},
}
