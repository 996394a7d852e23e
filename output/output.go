// Package output hands a resolved batch to a sink. Sinks describe the transfer;
// the bytes of the streams themselves are never fetched here.
package output

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	"github.com/samber/lo"
)

// Options configure a dispatch.
type Options struct {
	// Out receives the sink output.
	Out io.Writer
	// Dir is where downloads should land and where inline assets are written.
	Dir string
}

// Output is a pluggable sink.
type Output interface {
	Name() string
	Description() string
	Run(ctx context.Context, b *media.Batch, opts Options) error
}

var outputs = []Output{Links{}, JSON{}, Aria2{}, MPV{}}

// All returns every registered output.
func All() []Output {
	return outputs
}

// Names lists the registered output names.
func Names() []string {
	return lo.Map(outputs, func(o Output, _ int) string { return o.Name() })
}

// Get looks an output up by name.
func Get(name string) (Output, bool) {
	return lo.Find(outputs, func(o Output) bool { return o.Name() == name })
}

// Dispatch writes the inline assets of b into opts.Dir and then runs out.
func Dispatch(ctx context.Context, out Output, b *media.Batch, opts Options) error {
	if err := WriteInlineAssets(b, opts.Dir); err != nil {
		return err
	}

	log.WithField("output", out.Name()).Infof("dispatching %s", util.Quantify(len(b.Items), "item", "items"))
	return out.Run(ctx, b, opts)
}

// WriteInlineAssets stores every asset carrying data as a file in dir.
func WriteInlineAssets(b *media.Batch, dir string) error {
	for _, a := range b.ExtraAssets {
		if len(a.Data) == 0 {
			continue
		}

		if err := filesystem.API().MkdirAll(dir, 0755); err != nil {
			return err
		}

		path := filepath.Join(dir, util.CleanTitle(a.Name))
		if err := filesystem.WriteAtomic(path, a.Data); err != nil {
			return fmt.Errorf("write asset %s: %w", a.Name, err)
		}
	}
	return nil
}
