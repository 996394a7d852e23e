package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/media"
)

// Aria2 writes an aria2c input file: every fragment with its backups as mirrors.
type Aria2 struct{}

func (Aria2) Name() string { return "aria2" }

func (Aria2) Description() string {
	return "Write an aria2c input file. Download with: aria2c -i <file>"
}

func (Aria2) Run(_ context.Context, b *media.Batch, opts Options) error {
	for _, f := range b.Fragments() {
		if err := writeEntry(opts.Out, append([]string{f.URL}, f.BackupURLs...), f.Title, opts.Dir); err != nil {
			return err
		}
	}

	for _, a := range b.ExtraAssets {
		if a.URL == "" {
			continue
		}
		if err := writeEntry(opts.Out, []string{a.URL}, a.Name, opts.Dir); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, uris []string, out, dir string) error {
	var sb strings.Builder
	sb.WriteString(strings.Join(uris, "\t"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  out=%s\n", out)
	if dir != "" {
		fmt.Fprintf(&sb, "  dir=%s\n", dir)
	}
	fmt.Fprintf(&sb, "  referer=%s\n", constant.Referer)
	fmt.Fprintf(&sb, "  user-agent=%s\n", constant.UserAgent)

	_, err := io.WriteString(w, sb.String())
	return err
}
