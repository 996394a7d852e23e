package media

import (
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/lo"
)

// Fragment is one file to be produced.
type Fragment struct {
	URL        string   `json:"url"`
	BackupURLs []string `json:"backupUrls"`
	DurationMs int64    `json:"durationMs"`
	SizeBytes  int64    `json:"sizeBytes"`
	Extension  string   `json:"extension"`
	// Title is the file name including extension, unique within its ResolvedMedia.
	Title string `json:"title"`
}

// ResolvedMedia is the resolution result for one input item.
type ResolvedMedia struct {
	Input     *InputItem        `json:"input"`
	Fragments []Fragment        `json:"fragments"`
	Qualities []quality.Quality `json:"qualities"`
	Granted   quality.Quality   `json:"granted"`
}

// TotalSizeBytes sums fragment sizes.
func (r *ResolvedMedia) TotalSizeBytes() int64 {
	return lo.SumBy(r.Fragments, func(f Fragment) int64 { return f.SizeBytes })
}

// TotalDurationMs sums fragment durations.
func (r *ResolvedMedia) TotalDurationMs() int64 {
	return lo.SumBy(r.Fragments, func(f Fragment) int64 { return f.DurationMs })
}
