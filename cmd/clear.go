package cmd

import (
	"fmt"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/internal/cache"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/util"
	"github.com/dashgrab/dashgrab/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), func() error { return filesystem.API().RemoveAll(where.Cache()) }},
	{"cached listings", "listings", mo.Some("l"), cache.Clear},
	{"remembered preference", "preference", mo.Some("p"), func() error { return filesystem.API().RemoveAll(where.Preference()) }},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("expired", "e", false, "remove only expired cached listings")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached listings and remembered preferences",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("expired")) {
			removed, err := cache.CollectGarbage()
			handleErr(err)
			cmd.Printf("%s removed %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				util.Quantify(removed, "expired listing", "expired listings"),
			)
			return
		}

		var anyCleared bool
		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			handleErr(target.clear())
			cmd.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), target.name)
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
