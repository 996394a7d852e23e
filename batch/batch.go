// Package batch resolves many input items at once and names their fragments.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/reconcile"
	"github.com/dashgrab/dashgrab/resolver"
	"github.com/dashgrab/dashgrab/util"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmpty       = errors.New("no input items")
	ErrNoFragments = errors.New("no downloadable data received")
)

// Aggregator resolves a list of inputs into one batch. The first failure aborts the
// whole batch and cancels the resolutions still in flight.
type Aggregator struct {
	Fetcher    resolver.Fetcher
	Reconciler *reconcile.Reconciler
	// Concurrency caps parallel provider calls. Zero or less means unlimited.
	Concurrency int
}

// Aggregate resolves inputs with format. Items of the returned batch follow input order.
func (a *Aggregator) Aggregate(ctx context.Context, inputs []*media.InputItem, format *resolver.Format) (*media.Batch, error) {
	if len(inputs) == 0 {
		return nil, ErrEmpty
	}

	results := make([]*media.ResolvedMedia, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}

	for i, input := range inputs {
		g.Go(func() error {
			resolved, err := format.Resolve(gctx, a.Fetcher, input)
			if err != nil {
				return err
			}

			if err := a.Reconciler.Reconcile(input, resolved); err != nil {
				return err
			}

			results[i] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if lo.SumBy(results, func(r *media.ResolvedMedia) int { return len(r.Fragments) }) == 0 {
		return nil, ErrNoFragments
	}

	for _, r := range results {
		AssignTitles(r)
	}

	b := media.NewBatch(results)
	log.WithFields(logrus.Fields{
		"id":     b.ID,
		"format": format.Name,
		"items":  len(b.Items),
		"size":   humanize.Bytes(uint64(b.TotalSizeBytes())),
	}).Info("batch resolved")

	return b, nil
}

// AssignTitles names every fragment after its item. Fragments sharing an extension
// with another fragment of the same item get a 1-based index padded to the width
// of that extension's count, so titles never collide within an item.
func AssignTitles(r *media.ResolvedMedia) {
	counts := lo.CountValuesBy(r.Fragments, func(f media.Fragment) string {
		return f.Extension
	})
	seen := make(map[string]int, len(counts))

	for i := range r.Fragments {
		f := &r.Fragments[i]
		total := counts[f.Extension]
		if total < 2 {
			f.Title = r.Input.Title + f.Extension
			continue
		}

		seen[f.Extension]++
		f.Title = fmt.Sprintf("%s - %s%s", r.Input.Title, util.FormatNumber(seen[f.Extension], total), f.Extension)
	}
}
