package resolver

import (
	"context"
	"strings"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

func (f *Format) resolveSegmented(ctx context.Context, fetcher Fetcher, input *media.InputItem) (*media.ResolvedMedia, error) {
	data, err := fetcher.PlayURL(ctx, params(input, api.FnvalDash))
	if err != nil {
		return nil, apiFailure(f.Name, err)
	}

	if data.Dash == nil {
		return nil, noSuitableFormat(f.Name, "this video has no dash streams")
	}

	granted, ok := quality.ByValue(data.Quality)
	if !ok {
		return nil, noSuitableFormat(f.Name, "unknown quality %d returned", data.Quality)
	}

	durationMs := data.Dash.Duration * 1000
	videos := f.videoCandidates(data.Dash, granted, durationMs)
	audios := audioCandidates(data.Dash, durationMs)

	var fragments []media.Fragment
	if video, ok := pickVideo(videos, f.Codec); ok {
		fragments = append(fragments, video.Fragment())
	}
	if audio, ok := pickAudio(audios); ok {
		fragments = append(fragments, audio.Fragment())
	}

	log.WithFields(logrus.Fields{
		"format":    f.Name,
		"granted":   granted.DisplayName,
		"videos":    len(videos),
		"audios":    len(audios),
		"fragments": len(fragments),
	}).Debug("segmented streams selected")

	return &media.ResolvedMedia{
		Input:     input,
		Fragments: fragments,
		Qualities: withGranted(quality.Known(data.AcceptQuality), granted),
		Granted:   granted,
	}, nil
}

func (f *Format) videoCandidates(dash *api.Dash, granted quality.Quality, durationMs int64) []media.StreamDescriptor {
	if f.AudioOnly {
		return nil
	}

	return lo.FilterMap(dash.Video, func(s api.DashStream, _ int) (media.StreamDescriptor, bool) {
		if s.ID != granted.Value {
			return media.StreamDescriptor{}, false
		}
		return describe(media.Video, s, durationMs), true
	})
}

func audioCandidates(dash *api.Dash, durationMs int64) []media.StreamDescriptor {
	audios := lo.Map(dash.Audio, func(s api.DashStream, _ int) media.StreamDescriptor {
		return describe(media.Audio, s, durationMs)
	})

	var bonus []api.DashStream
	if dash.Dolby != nil {
		bonus = append(bonus, dash.Dolby.Audio...)
	}
	if dash.Flac != nil && dash.Flac.Audio != nil {
		bonus = append(bonus, *dash.Flac.Audio)
	}

	return append(audios, lo.Map(bonus, func(s api.DashStream, _ int) media.StreamDescriptor {
		return describe(media.Audio, s, durationMs)
	})...)
}

func describe(kind media.StreamKind, s api.DashStream, durationMs int64) media.StreamDescriptor {
	return media.StreamDescriptor{
		Kind:       kind,
		URL:        secure(s.URL()),
		BackupURLs: lo.Map(s.Backups(), func(u string, _ int) string { return secure(u) }),
		DurationMs: durationMs,
		Bandwidth:  s.Bandwidth,
		CodecID:    s.CodecID,
		Codec:      media.CodecOf(s.CodecID),
		Quality:    s.ID,
	}
}

// pickVideo prefers the lowest-bandwidth candidate of the requested codec and falls
// back to the lowest-bandwidth candidate of any codec.
func pickVideo(candidates []media.StreamDescriptor, codec media.Codec) (media.StreamDescriptor, bool) {
	if len(candidates) == 0 {
		return media.StreamDescriptor{}, false
	}

	pool := lo.Filter(candidates, func(s media.StreamDescriptor, _ int) bool {
		return s.Codec == codec
	})
	if len(pool) == 0 {
		pool = candidates
	}

	return lo.MinBy(pool, func(a, b media.StreamDescriptor) bool {
		return a.Bandwidth < b.Bandwidth
	}), true
}

// pickAudio keeps the single highest-bandwidth audio candidate.
func pickAudio(candidates []media.StreamDescriptor) (media.StreamDescriptor, bool) {
	if len(candidates) == 0 {
		return media.StreamDescriptor{}, false
	}

	return lo.MaxBy(candidates, func(a, b media.StreamDescriptor) bool {
		return a.Bandwidth > b.Bandwidth
	}), true
}

func secure(u string) string {
	if strings.HasPrefix(u, "http:") {
		return "https:" + strings.TrimPrefix(u, "http:")
	}
	return u
}

// withGranted keeps the granted quality a member of a non-empty available list.
func withGranted(available []quality.Quality, granted quality.Quality) []quality.Quality {
	if len(available) == 0 || lo.ContainsBy(available, func(q quality.Quality) bool { return q.Value == granted.Value }) {
		return available
	}

	available = append(available, granted)
	slices.SortStableFunc(available, func(a, b quality.Quality) int {
		return b.Value - a.Value
	})
	return available
}
