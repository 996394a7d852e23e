package asset

import (
	"context"
	"encoding/json"

	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/lo"
)

// Metadata writes one <title>.info.json per item describing what was resolved.
type Metadata struct{}

func (Metadata) Name() string { return "metadata" }

func (Metadata) Description() string {
	return "Writes <title>.info.json next to every item with ids, quality and fragments."
}

type info struct {
	AID        int64             `json:"aid"`
	CID        int64             `json:"cid"`
	Title      string            `json:"title"`
	Quality    quality.Quality   `json:"quality"`
	Qualities  []quality.Quality `json:"qualities"`
	SizeBytes  int64             `json:"sizeBytes"`
	DurationMs int64             `json:"durationMs"`
	Fragments  []media.Fragment  `json:"fragments"`
}

func (Metadata) Assets(_ context.Context, items []*media.ResolvedMedia) ([]media.Asset, error) {
	assets := make([]media.Asset, 0, len(items))
	for _, item := range items {
		data, err := json.MarshalIndent(info{
			AID:        item.Input.AID,
			CID:        item.Input.CID,
			Title:      item.Input.Title,
			Quality:    item.Granted,
			Qualities:  lo.Ternary(item.Qualities == nil, []quality.Quality{}, item.Qualities),
			SizeBytes:  item.TotalSizeBytes(),
			DurationMs: item.TotalDurationMs(),
			Fragments:  item.Fragments,
		}, "", "  ")
		if err != nil {
			return nil, err
		}

		assets = append(assets, media.Asset{
			Name: item.Input.Title + ".info.json",
			Data: data,
		})
	}
	return assets, nil
}
