// Package media defines the values that flow through stream resolution:
// input items, stream candidates, fragments, resolved items and batches.
package media

import (
	"fmt"

	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/mo"
)

// InputItem is one addressable unit of content, such as an episode or a page of a multi-part video.
type InputItem struct {
	// AID is the content id.
	AID int64 `json:"aid"`
	// CID is the sub-part id.
	CID int64 `json:"cid"`
	// Title names the files produced for this item, without extension.
	Title string `json:"title"`
	// Quality is the requested quality. None lets the provider choose.
	Quality mo.Option[quality.Quality] `json:"quality" jsonschema:"type=object"`
	// AllowQualityDrop accepts a lower granted quality with a warning instead of failing.
	AllowQualityDrop bool `json:"allowQualityDrop"`
	// Duration in milliseconds as advertised by the listing, zero if unknown.
	DurationMs int64 `json:"durationMs,omitempty"`
}

func (i *InputItem) String() string {
	return fmt.Sprintf("%s (av%d/%d)", i.Title, i.AID, i.CID)
}

// WithQuality attaches the requested quality. It is the only mutation an item sees before resolution.
func (i *InputItem) WithQuality(q mo.Option[quality.Quality]) *InputItem {
	i.Quality = q
	return i
}
