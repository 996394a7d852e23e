package media

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Asset is an extra non-stream file attached to a batch. Either URL or Data is set.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
	// Provider is the name of the asset provider that produced it.
	Provider string `json:"provider"`
}

// Batch aggregates the resolved items of one download action.
type Batch struct {
	ID          uuid.UUID        `json:"id"`
	Items       []*ResolvedMedia `json:"items"`
	ExtraAssets []Asset          `json:"extraAssets"`
}

// NewBatch wraps items in a batch with a fresh id and no assets.
func NewBatch(items []*ResolvedMedia) *Batch {
	return &Batch{
		ID:          uuid.New(),
		Items:       items,
		ExtraAssets: []Asset{},
	}
}

// IsSingleItem reports whether the batch holds fewer than two items.
func (b *Batch) IsSingleItem() bool {
	return len(b.Items) < 2
}

// Fragments returns every fragment of every item, in item order.
func (b *Batch) Fragments() []Fragment {
	return lo.FlatMap(b.Items, func(r *ResolvedMedia, _ int) []Fragment {
		return r.Fragments
	})
}

// TotalSizeBytes sums the sizes of every item.
func (b *Batch) TotalSizeBytes() int64 {
	return lo.SumBy(b.Items, func(r *ResolvedMedia) int64 { return r.TotalSizeBytes() })
}
