package output

import (
	"context"
	"fmt"

	"github.com/dashgrab/dashgrab/media"
)

// Links prints one "title<TAB>url" line per fragment and per url asset.
// Links only work with the referer set, so they are meant for other tools rather than a browser.
type Links struct{}

func (Links) Name() string { return "links" }

func (Links) Description() string {
	return "Print the title and url of every fragment. The urls need a referer header, opening them in a browser tab will not work."
}

func (Links) Run(_ context.Context, b *media.Batch, opts Options) error {
	for _, f := range b.Fragments() {
		if _, err := fmt.Fprintf(opts.Out, "%s\t%s\n", f.Title, f.URL); err != nil {
			return err
		}
	}

	for _, a := range b.ExtraAssets {
		if a.URL == "" {
			continue
		}
		if _, err := fmt.Fprintf(opts.Out, "%s\t%s\n", a.Name, a.URL); err != nil {
			return err
		}
	}
	return nil
}
