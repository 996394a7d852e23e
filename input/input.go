// Package input discovers the items a page url refers to.
//
// Providers are matched against the url; batch providers list every page of a
// multi-part video or every episode of a season and let selectors narrow them down.
package input

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	"github.com/samber/lo"
)

// Lister lists the parts of a video and the episodes of a season. *api.Client implements it.
type Lister interface {
	View(ctx context.Context, params api.ViewParams) (*api.View, error)
	SeasonSection(ctx context.Context, seasonID int64) (*api.SeasonSection, error)
}

// Provider supplies input items for the pages it matches.
type Provider interface {
	Name() string
	DisplayName() string
	// Batch providers list several items, usually narrowed down with a selector.
	Batch() bool
	Match(u *url.URL) bool
	Inputs(ctx context.Context, u *url.URL) ([]*media.InputItem, error)
}

// Registry returns every provider in match priority order.
func Registry(lister Lister, pages PageFetcher) []Provider {
	return []Provider{
		&Video{Lister: lister},
		&VideoBatch{Lister: lister},
		&BangumiBatch{Lister: lister, Pages: pages},
	}
}

// Matching returns the providers applicable to u, keeping registry order.
func Matching(providers []Provider, u *url.URL) []Provider {
	return lo.Filter(providers, func(p Provider, _ int) bool {
		return p.Match(u)
	})
}

// Find returns the provider named name.
func Find(providers []Provider, name string) (Provider, bool) {
	return lo.Find(providers, func(p Provider) bool {
		return p.Name() == name
	})
}

var (
	videoPath   = regexp.MustCompile(`^/video/(?:av(?P<aid>\d+)|(?P<bvid>BV[0-9A-Za-z]{10}))/?$`)
	bangumiPath = regexp.MustCompile(`^/bangumi/play/(?:ss(?P<ss>\d+)|ep(?P<ep>\d+))/?$`)
)

func isVideoURL(u *url.URL) bool {
	return u != nil && videoPath.MatchString(u.Path)
}

func isBangumiURL(u *url.URL) bool {
	return u != nil && bangumiPath.MatchString(u.Path)
}

func viewParams(u *url.URL) (api.ViewParams, error) {
	groups := util.ReGroups(videoPath, u.Path)
	if len(groups) == 0 {
		return api.ViewParams{}, fmt.Errorf("not a video url: %s", u)
	}

	if bvid := groups["bvid"]; bvid != "" {
		return api.ViewParams{BVID: bvid}, nil
	}

	aid, err := strconv.ParseInt(groups["aid"], 10, 64)
	if err != nil {
		return api.ViewParams{}, err
	}
	return api.ViewParams{AID: aid}, nil
}

// pageNumber reads the 1-based ?p= query, 1 when absent or invalid.
func pageNumber(u *url.URL) int {
	p, err := strconv.Atoi(u.Query().Get("p"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

var shorthand = regexp.MustCompile(`^(?:(?P<video>av\d+|BV[0-9A-Za-z]{10})|(?P<bangumi>(?:ss|ep)\d+))$`)

// ParseTarget accepts a page url or a bare id such as BV1xx411c7mD, av170001,
// ss33 or ep100, which is expanded against pageBase.
func ParseTarget(target, pageBase string) (*url.URL, error) {
	target = strings.TrimSpace(target)

	if groups := util.ReGroups(shorthand, target); len(groups) > 0 {
		base := strings.TrimRight(pageBase, "/")
		if id := groups["video"]; id != "" {
			return url.Parse(base + "/video/" + id)
		}
		return url.Parse(base + "/bangumi/play/" + groups["bangumi"])
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("not a url or id: %s", target)
	}
	return u, nil
}
