// Package asset attaches extra files, such as metadata or subtitles, to a resolved batch.
package asset

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/where"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Provider produces extra assets from resolved items. It must not mutate the items.
type Provider interface {
	Name() string
	Description() string
	Assets(ctx context.Context, items []*media.ResolvedMedia) ([]media.Asset, error)
}

// Attach runs every provider and appends their assets to b in provider order.
// The first provider error is returned unchanged and b is left untouched.
func Attach(ctx context.Context, b *media.Batch, providers []Provider) error {
	results := make([][]media.Asset, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			assets, err := p.Assets(gctx, b.Items)
			if err != nil {
				return err
			}

			for j := range assets {
				assets[j].Provider = p.Name()
			}
			results[i] = assets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	attached := lo.Flatten(results)
	b.ExtraAssets = append(b.ExtraAssets, attached...)

	log.WithField("count", len(attached)).Debug("assets attached")
	return nil
}

// Builtins returns the providers shipped with the binary.
func Builtins() []Provider {
	return []Provider{Metadata{}}
}

// Customs loads every Lua asset script in the assets directory, sorted by file name.
func Customs() ([]Provider, error) {
	files, err := filesystem.API().ReadDir(where.Assets())
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	var providers []Provider
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != constant.AssetScriptExtension {
			continue
		}

		p, err := LoadLua(filepath.Join(where.Assets(), f.Name()))
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, nil
}

// All returns the builtin providers followed by the Lua ones.
func All() ([]Provider, error) {
	customs, err := Customs()
	if err != nil {
		return nil, err
	}
	return append(Builtins(), customs...), nil
}

// Get resolves providers by name, keeping the order of names.
func Get(names []string) ([]Provider, error) {
	if len(names) == 0 {
		return nil, nil
	}

	all, err := All()
	if err != nil {
		return nil, err
	}

	byName := lo.KeyBy(all, func(p Provider) string { return p.Name() })
	providers := make([]Provider, 0, len(names))
	for _, name := range lo.Uniq(names) {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown asset provider %q", name)
		}
		providers = append(providers, p)
	}
	return providers, nil
}
