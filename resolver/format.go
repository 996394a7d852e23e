// Package resolver turns an input item into resolved media for a named output format.
//
// Formats form a closed set looked up by name. Segmented formats negotiate codec and
// pick one video and one audio stream; monolithic formats map byte-range parts
// directly onto fragments.
package resolver

import (
	"context"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Kind selects the resolution algorithm of a format.
type Kind int

const (
	Segmented Kind = iota
	Monolithic
)

// Fetcher retrieves playback manifests. *api.Client implements it.
type Fetcher interface {
	PlayURL(ctx context.Context, params api.PlayURLParams) (*api.PlayURL, error)
}

// Format is a registered output format.
type Format struct {
	Name        string
	DisplayName string
	Description string
	Kind        Kind

	// Codec is the preferred video codec of a segmented format.
	Codec media.Codec
	// AudioOnly drops every video candidate of a segmented format.
	AudioOnly bool
	// Extensions are assigned to monolithic parts in order; the last one repeats.
	Extensions []string
}

func (f *Format) String() string {
	return f.DisplayName
}

var formats = []*Format{
	{
		Name:        "video.flv",
		DisplayName: "flv",
		Description: "Single interleaved flv file, possibly split into several parts. H.264 only.",
		Kind:        Monolithic,
		Extensions:  []string{".flv"},
	},
	{
		Name:        "video.dash.avc",
		DisplayName: "dash (AVC/H.264)",
		Description: "Separate mp4 video and m4a audio, H.264 encoded, best compatibility. Merge them after download.",
		Kind:        Segmented,
		Codec:       media.AVC,
	},
	{
		Name:        "video.dash.hevc",
		DisplayName: "dash (HEVC/H.265)",
		Description: "Separate mp4 video and m4a audio, H.265 encoded, smaller files, weaker compatibility. Merge them after download.",
		Kind:        Segmented,
		Codec:       media.HEVC,
	},
	{
		Name:        "video.dash.av1",
		DisplayName: "dash (AV1)",
		Description: "Separate mp4 video and m4a audio, AV1 encoded, smallest files, needs a recent player. Merge them after download.",
		Kind:        Segmented,
		Codec:       media.AV1,
	},
	{
		Name:        "video.dash.audio",
		DisplayName: "dash (audio only)",
		Description: "Only the audio track of the video.",
		Kind:        Segmented,
		AudioOnly:   true,
	},
}

var byName = lo.KeyBy(formats, func(f *Format) string { return f.Name })

// All returns the registered formats in registration order.
func All() []*Format {
	return formats
}

// Get looks a format up by name.
func Get(name string) (*Format, bool) {
	f, ok := byName[name]
	return f, ok
}

// Names returns the names of every registered format.
func Names() []string {
	return lo.Map(formats, func(f *Format, _ int) string { return f.Name })
}

// Resolve queries the provider for input and builds its resolved media.
// Quality reconciliation is left to the caller.
func (f *Format) Resolve(ctx context.Context, fetcher Fetcher, input *media.InputItem) (*media.ResolvedMedia, error) {
	log.WithFields(logrus.Fields{
		"format": f.Name,
		"aid":    input.AID,
		"cid":    input.CID,
	}).Debug("resolving")

	switch f.Kind {
	case Monolithic:
		return f.resolveMonolithic(ctx, fetcher, input)
	default:
		return f.resolveSegmented(ctx, fetcher, input)
	}
}

func params(input *media.InputItem, fnval int) api.PlayURLParams {
	p := api.PlayURLParams{AID: input.AID, CID: input.CID, Fnval: fnval}
	if q, ok := input.Quality.Get(); ok {
		p.Quality = q.Value
	}
	return p
}
