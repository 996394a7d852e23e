package cmd

import (
	"os"
	"strconv"

	"github.com/dashgrab/dashgrab/preference"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(qualitiesCmd)
	qualitiesCmd.SetOut(os.Stdout)
}

var qualitiesCmd = &cobra.Command{
	Use:   "qualities",
	Short: "List known qualities and the access each one needs",
	Run: func(cmd *cobra.Command, args []string) {
		pref, _ := preference.Load()

		rows := lo.Map(quality.All(), func(q quality.Quality, _ int) []string {
			mark := ""
			if q.Value == pref.Quality {
				mark = "remembered"
			}
			return []string{strconv.Itoa(q.Value), q.DisplayName, q.Access.String(), mark}
		})

		cmd.Println(renderTable(
			[]string{"ID", "Name", "Access", ""},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
	},
}
