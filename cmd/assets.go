package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dashgrab/dashgrab/asset"
	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/util"
	"github.com/dashgrab/dashgrab/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(assetsCmd)
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage built-in and Lua asset providers",
}

func init() {
	assetsCmd.AddCommand(assetsListCmd)

	assetsListCmd.Flags().BoolP("raw", "r", false, "Print only provider names")
	assetsListCmd.Flags().BoolP("custom", "c", false, "List only Lua providers")
	assetsListCmd.Flags().BoolP("builtin", "b", false, "List only built-in providers")

	assetsListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	assetsListCmd.SetOut(os.Stdout)
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered asset providers",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render

		list := func(header string, providers []asset.Provider) {
			if !raw {
				cmd.Println(headerStyle(header))
			}
			for _, p := range providers {
				if raw {
					cmd.Println(p.Name())
					continue
				}
				cmd.Printf("%s %s\n", p.Name(), style.Faint(p.Description()))
			}
		}

		customs, err := asset.Customs()
		handleErr(err)

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			list("Builtin:", asset.Builtins())
		case lo.Must(cmd.Flags().GetBool("custom")):
			list("Custom:", customs)
		default:
			list("Builtin:", asset.Builtins())
			if !raw {
				cmd.Println()
			}
			list("Custom:", customs)
		}
	},
}

func customAssetNames() []string {
	entries, err := filesystem.API().ReadDir(where.Assets())
	if err != nil {
		return nil
	}

	return lo.FilterMap(entries, func(item os.FileInfo, _ int) (string, bool) {
		if !strings.HasSuffix(item.Name(), constant.AssetScriptExtension) {
			return "", false
		}
		return util.FileStem(item.Name()), true
	})
}

func init() {
	assetsCmd.AddCommand(assetsRemoveCmd)

	assetsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Lua provider to remove")
	lo.Must0(assetsRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return customAssetNames(), cobra.ShellCompDirectiveNoFileComp
	}))
}

var assetsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove Lua asset providers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			if !lo.Contains(customAssetNames(), name) {
				handleErr(errUnknown("asset provider", name, customAssetNames()))
			}

			path := filepath.Join(where.Assets(), name+constant.AssetScriptExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	assetsCmd.AddCommand(assetsGenCmd)

	assetsGenCmd.Flags().StringP("name", "n", "", "Name of the new provider")
	lo.Must0(assetsGenCmd.MarkFlagRequired("name"))
	assetsGenCmd.SetOut(os.Stdout)
}

var assetsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a Lua asset provider",
	Long: fmt.Sprintf(`Write a Lua asset provider skeleton into the assets directory.
The script must define %s(items) and return a list of {name, url} or {name, data} tables.`, constant.GetAssetsFn),
	Run: func(cmd *cobra.Command, args []string) {
		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name   string
			Author string
			Fn     string
		}{
			Name:   lo.Must(cmd.Flags().GetString("name")),
			Author: author,
			Fn:     constant.GetAssetsFn,
		}

		tmpl, err := template.New("asset").Parse(constant.AssetScriptTemplate)
		handleErr(err)

		target := filepath.Join(where.Assets(), util.SanitizeFilename(s.Name)+constant.AssetScriptExtension)
		if exists, _ := filesystem.API().Exists(target); exists {
			handleErr(fmt.Errorf("%s already exists", target))
		}

		f, err := filesystem.API().Create(target)
		handleErr(err)
		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}
