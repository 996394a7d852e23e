package resolver

import (
	"context"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/lo"
)

func (f *Format) resolveMonolithic(ctx context.Context, fetcher Fetcher, input *media.InputItem) (*media.ResolvedMedia, error) {
	data, err := fetcher.PlayURL(ctx, params(input, api.FnvalFLV))
	if err != nil {
		return nil, apiFailure(f.Name, err)
	}

	if len(data.Durl) == 0 {
		return nil, noSuitableFormat(f.Name, "this video has no flv parts")
	}

	granted, ok := quality.ByValue(data.Quality)
	if !ok {
		return nil, noSuitableFormat(f.Name, "unknown quality %d returned", data.Quality)
	}

	fragments := lo.Map(data.Durl, func(part api.Durl, i int) media.Fragment {
		return media.Fragment{
			URL:        part.URL,
			BackupURLs: lo.Ternary(part.BackupURL == nil, []string{}, part.BackupURL),
			DurationMs: part.Length,
			SizeBytes:  part.Size,
			Extension:  extensionAt(f.Extensions, i),
		}
	})

	return &media.ResolvedMedia{
		Input:     input,
		Fragments: fragments,
		Qualities: withGranted(quality.Known(data.AcceptQuality), granted),
		Granted:   granted,
	}, nil
}

// extensionAt cycles through extensions, repeating the last one once they run out.
func extensionAt(extensions []string, i int) string {
	switch {
	case len(extensions) == 0:
		return media.ExtFallback
	case i < len(extensions):
		return extensions[i]
	default:
		return extensions[len(extensions)-1]
	}
}
