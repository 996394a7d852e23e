package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/asset"
	"github.com/dashgrab/dashgrab/batch"
	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/input"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/network"
	"github.com/dashgrab/dashgrab/output"
	"github.com/dashgrab/dashgrab/preference"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/dashgrab/dashgrab/reconcile"
	"github.com/dashgrab/dashgrab/resolver"
	"github.com/dashgrab/dashgrab/style"
	"github.com/dashgrab/dashgrab/util"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("input", "i", "", "Input provider to list items with. Defaults to the first one matching the url")
	lo.Must0(getCmd.RegisterFlagCompletionFunc("input", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(input.Registry(nil, nil), func(p input.Provider, _ int) string { return p.Name() }), cobra.ShellCompDirectiveNoFileComp
	}))

	getCmd.Flags().StringP("format", "f", "", "Format to resolve, see \"dashgrab formats\"")
	lo.Must0(getCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return resolver.Names(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.DownloadFormat, getCmd.Flags().Lookup("format")))

	getCmd.Flags().StringP("quality", "q", "", "Quality id or name, e.g. 80 or 1080P. Defaults to the remembered or best quality")
	lo.Must0(getCmd.RegisterFlagCompletionFunc("quality", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(quality.All(), func(q quality.Quality, _ int) string { return q.DisplayName }), cobra.ShellCompDirectiveNoFileComp
	}))

	getCmd.Flags().StringP("select", "s", "", "Items of a batch input: all, first, last, N, A-B, @text@, comma separated")

	getCmd.Flags().StringP("output", "o", "", "Output to hand the batch to, see \"dashgrab outputs\"")
	lo.Must0(getCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.Names(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.DownloadOutput, getCmd.Flags().Lookup("output")))

	getCmd.Flags().String("out", "", "Write the output to this file instead of stdout. Inline assets go next to it")

	getCmd.Flags().StringSliceP("asset", "a", []string{}, "Asset providers to attach, see \"dashgrab assets\"")
	lo.Must0(viper.BindPFlag(key.AssetsDefault, getCmd.Flags().Lookup("asset")))

	getCmd.Flags().BoolP("allow-drop", "d", false, "Accept a lower quality than requested instead of failing")
	lo.Must0(viper.BindPFlag(key.DownloadAllowQualityDrop, getCmd.Flags().Lookup("allow-drop")))

	getCmd.Flags().BoolP("interactive", "I", false, "Pick the input, items and quality with prompts")
}

var getCmd = &cobra.Command{
	Use:   "get <url|id>",
	Short: "Resolve the download links of a video, its parts or a season",
	Example: `  dashgrab get BV1xx411c7mD
  dashgrab get https://www.bilibili.com/video/av170001?p=2 -q 1080P -f video.dash.hevc
  dashgrab get ss33 -i bangumi.batch -s 1-12 -o aria2 --out season.txt`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions{
			Target:      args[0],
			Input:       lo.Must(cmd.Flags().GetString("input")),
			Format:      viper.GetString(key.DownloadFormat),
			Quality:     lo.Must(cmd.Flags().GetString("quality")),
			Select:      lo.Must(cmd.Flags().GetString("select")),
			Output:      viper.GetString(key.DownloadOutput),
			Out:         lo.Must(cmd.Flags().GetString("out")),
			Assets:      viper.GetStringSlice(key.AssetsDefault),
			AllowDrop:   viper.GetBool(key.DownloadAllowQualityDrop),
			Interactive: lo.Must(cmd.Flags().GetBool("interactive")),
			Remember:    viper.GetBool(key.DownloadRememberQuality),
			MaxItems:    viper.GetInt(key.BatchMaxItems),
			Concurrency: viper.GetInt(key.BatchConcurrency),
		}

		p := newPipeline(newClient(), os.Stdout, os.Stderr)
		handleErr(p.run(cmd.Context(), opts))
	},
}

type getOptions struct {
	Target      string
	Input       string
	Format      string
	Quality     string
	Select      string
	Output      string
	Out         string
	Assets      []string
	AllowDrop   bool
	Interactive bool
	Remember    bool
	MaxItems    int
	Concurrency int
}

// pipeline runs inputs, resolution, assets and output for one get.
type pipeline struct {
	client *api.Client
	inputs []input.Provider
	stdout io.Writer
	stderr io.Writer

	// mu serializes writes to stderr; warnings arrive from resolution goroutines.
	mu sync.Mutex
}

func newPipeline(client *api.Client, stdout, stderr io.Writer) *pipeline {
	return &pipeline{
		client: client,
		inputs: input.Registry(input.Cached{Lister: client}, input.HTTPPages{Client: network.Configured()}),
		stdout: stdout,
		stderr: stderr,
	}
}

func (p *pipeline) run(ctx context.Context, opts getOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := input.ParseTarget(opts.Target, viper.GetString(key.APIPageBaseURL))
	if err != nil {
		return err
	}

	provider, err := p.pickInput(u.String(), opts, input.Matching(p.inputs, u))
	if err != nil {
		return err
	}

	items, err := provider.Inputs(ctx, u)
	if err != nil {
		return err
	}

	if provider.Batch() {
		if items, err = p.selectItems(items, opts); err != nil {
			return err
		}
	}

	if len(items) == 0 {
		return errors.New("no items selected, pick at least one item of the batch")
	}

	format, ok := resolver.Get(opts.Format)
	if !ok {
		return errUnknown("format", opts.Format, resolver.Names())
	}

	out, ok := output.Get(opts.Output)
	if !ok {
		return errUnknown("output", opts.Output, output.Names())
	}

	if err := checkDependency(p.stderr, out.Name()); err != nil {
		return err
	}

	assets, err := asset.Get(opts.Assets)
	if err != nil {
		return err
	}

	requested, err := p.pickQuality(ctx, format, items[0], opts)
	if err != nil {
		return err
	}

	for _, item := range items {
		item.WithQuality(requested)
		item.AllowQualityDrop = item.AllowQualityDrop || opts.AllowDrop
	}

	aggregator := &batch.Aggregator{
		Fetcher:     p.client,
		Reconciler:  &reconcile.Reconciler{Warn: p.warn},
		Concurrency: opts.Concurrency,
	}

	b, err := aggregator.Aggregate(ctx, items, format)
	if err != nil {
		return err
	}

	if err := asset.Attach(ctx, b, assets); err != nil {
		return err
	}

	w, dir, closeOut, err := p.destination(opts.Out)
	if err != nil {
		return err
	}
	defer util.Ignore(closeOut)

	if err := output.Dispatch(ctx, out, b, output.Options{Out: w, Dir: dir}); err != nil {
		return err
	}

	p.summary(b)

	if q, ok := requested.Get(); ok && opts.Remember {
		if err := preference.RememberQuality(q); err != nil {
			log.Warnf("failed to remember quality: %s", err)
		}
	}

	return nil
}

func (p *pipeline) pickInput(target string, opts getOptions, matching []input.Provider) (input.Provider, error) {
	if opts.Input != "" {
		provider, ok := input.Find(p.inputs, opts.Input)
		if !ok {
			return nil, errUnknown("input", opts.Input, lo.Map(p.inputs, func(p input.Provider, _ int) string { return p.Name() }))
		}
		if !lo.Contains(matching, provider) {
			return nil, fmt.Errorf("input %s does not apply to %s", opts.Input, target)
		}
		return provider, nil
	}

	switch {
	case len(matching) == 0:
		return nil, fmt.Errorf("no input matches %s", target)
	case len(matching) == 1 || !opts.Interactive:
		return matching[0], nil
	}

	var idx int
	err := survey.AskOne(&survey.Select{
		Message: "Input",
		Options: lo.Map(matching, func(p input.Provider, _ int) string { return p.DisplayName() }),
	}, &idx)
	if err != nil {
		return nil, err
	}
	return matching[idx], nil
}

func (p *pipeline) selectItems(items []*media.InputItem, opts getOptions) ([]*media.InputItem, error) {
	selector := input.DefaultSelector(opts.MaxItems)
	if opts.Select != "" {
		var err error
		if selector, err = input.ParseSelector(opts.Select); err != nil {
			return nil, err
		}
	}

	if !opts.Interactive {
		return selector(items), nil
	}

	preselected := selector(items)
	defaults := lo.FilterMap(items, func(item *media.InputItem, i int) (int, bool) {
		return i, lo.Contains(preselected, item)
	})

	var picked []int
	err := survey.AskOne(&survey.MultiSelect{
		Message:  "Items",
		Options:  lo.Map(items, func(item *media.InputItem, _ int) string { return item.Title }),
		Default:  defaults,
		PageSize: 15,
	}, &picked)
	if err != nil {
		return nil, err
	}

	return lo.Map(picked, func(i int, _ int) *media.InputItem { return items[i] }), nil
}

// pickQuality uses the flag when given. Otherwise resolving the first item lists
// the qualities on offer and the remembered one, or the one granted by default, is taken.
func (p *pipeline) pickQuality(ctx context.Context, format *resolver.Format, first *media.InputItem, opts getOptions) (mo.Option[quality.Quality], error) {
	if opts.Quality != "" {
		q, err := quality.Parse(opts.Quality)
		if err != nil {
			return mo.None[quality.Quality](), err
		}
		return mo.Some(q), nil
	}

	sample, err := format.Resolve(ctx, p.client, first)
	if err != nil {
		return mo.None[quality.Quality](), err
	}

	if len(sample.Qualities) == 0 {
		return mo.None[quality.Quality](), nil
	}

	if opts.Interactive {
		var idx int
		err := survey.AskOne(&survey.Select{
			Message: "Quality",
			Options: lo.Map(sample.Qualities, func(q quality.Quality, _ int) string {
				return fmt.Sprintf("%s (%s)", q.DisplayName, q.Access)
			}),
			Default: lo.IndexOf(sample.Qualities, sample.Granted),
		}, &idx)
		if err != nil {
			return mo.None[quality.Quality](), err
		}
		return mo.Some(sample.Qualities[idx]), nil
	}

	var pref preference.Preference
	if opts.Remember {
		if pref, err = preference.Load(); err != nil {
			log.Warnf("failed to load preference: %s", err)
		}
	}

	if pref.Quality == 0 {
		return mo.Some(sample.Granted), nil
	}

	q, _ := pref.Choose(sample.Qualities)
	return mo.Some(q), nil
}

func (p *pipeline) destination(path string) (io.Writer, string, func() error, error) {
	if path == "" || path == "-" {
		return p.stdout, ".", func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if err := filesystem.API().MkdirAll(dir, 0755); err != nil {
		return nil, "", nil, err
	}

	f, err := filesystem.API().Create(path)
	if err != nil {
		return nil, "", nil, err
	}
	return f, dir, f.Close, nil
}

func (p *pipeline) warn(msg string) {
	log.Warn(msg)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.stderr, "%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), msg)
}

func (p *pipeline) summary(b *media.Batch) {
	rows := lo.Map(b.Items, func(r *media.ResolvedMedia, i int) []string {
		return []string{
			strconv.Itoa(i + 1),
			r.Input.Title,
			r.Granted.DisplayName,
			strconv.Itoa(len(r.Fragments)),
			humanize.Bytes(uint64(r.TotalSizeBytes())),
			(time.Duration(r.TotalDurationMs()) * time.Millisecond).String(),
		}
	})

	_, _ = fmt.Fprintln(p.stderr, renderTable(
		[]string{"#", "Title", "Quality", "Files", "Size", "Duration"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
	_, _ = fmt.Fprintf(p.stderr, "%s %s, %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		util.Quantify(len(b.Fragments())+len(b.ExtraAssets), "file", "files"),
		humanize.Bytes(uint64(b.TotalSizeBytes())),
	)
}
