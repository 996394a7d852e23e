package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// PageFetcher downloads the html of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (io.ReadCloser, error)
}

// HTTPPages fetches pages with a browser user agent.
type HTTPPages struct {
	Client *http.Client
}

func (h HTTPPages) Fetch(ctx context.Context, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Referer", constant.Referer)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		util.Ignore(resp.Body.Close)
		return nil, fmt.Errorf("%s: %s", pageURL, resp.Status)
	}
	return resp.Body, nil
}

var seasonInOgURL = regexp.MustCompile(`play/ss(\d+)`)

// SeasonIDFromPage reads the season id from the og:url meta tag of an episode page.
func SeasonIDFromPage(r io.Reader) (int64, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return 0, err
	}

	content, ok := doc.Find(`meta[property="og:url"]`).Attr("content")
	if !ok {
		return 0, errors.New("season id not found: page has no og:url")
	}

	m := seasonInOgURL.FindStringSubmatch(content)
	if m == nil {
		return 0, fmt.Errorf("season id not found in %q", content)
	}
	return strconv.ParseInt(m[1], 10, 64)
}

// BangumiBatch lists every episode in the main section of a season.
type BangumiBatch struct {
	Lister Lister
	Pages  PageFetcher
}

func (*BangumiBatch) Name() string { return "bangumi.batch" }
func (*BangumiBatch) DisplayName() string { return "Current season (all episodes)" }
func (*BangumiBatch) Batch() bool { return true }
func (*BangumiBatch) Match(u *url.URL) bool { return isBangumiURL(u) }

func (b *BangumiBatch) Inputs(ctx context.Context, u *url.URL) ([]*media.InputItem, error) {
	seasonID, err := b.seasonID(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to get season info: %w", err)
	}

	section, err := b.Lister.SeasonSection(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}

	episodes := section.MainSection.Episodes
	format := viper.GetString(key.BatchFilenameFormat)

	return lo.Map(episodes, func(e api.Episode, i int) *media.InputItem {
		n, ep := episodeNames(e, i, len(episodes))
		return &media.InputItem{
			AID: e.AID,
			CID: e.CID,
			Title: util.FormatTitle(format, map[string]string{
				"n":     n,
				"ep":    ep,
				"cid":   strconv.FormatInt(e.CID, 10),
				"aid":   strconv.FormatInt(e.AID, 10),
				"title": section.MainSection.Title,
			}),
			AllowQualityDrop: true,
		}
	}), nil
}

func (b *BangumiBatch) seasonID(ctx context.Context, u *url.URL) (int64, error) {
	m := bangumiPath.FindStringSubmatch(u.Path)
	if m == nil {
		return 0, fmt.Errorf("not a bangumi url: %s", u)
	}

	if ss := m[bangumiPath.SubexpIndex("ss")]; ss != "" {
		return strconv.ParseInt(ss, 10, 64)
	}

	log.WithField("url", u.String()).Debug("reading season id from episode page")

	page, err := b.Pages.Fetch(ctx, u.String())
	if err != nil {
		return 0, err
	}
	defer util.Ignore(page.Close)

	return SeasonIDFromPage(page)
}

// episodeNames returns the [n] and [ep] variables. Episodes with a long title use
// their short title as the number; others are numbered by position.
func episodeNames(e api.Episode, index, total int) (n, ep string) {
	number, ep := strconv.Itoa(index+1), e.Title
	if e.LongTitle != "" {
		number, ep = e.Title, e.LongTitle
	}

	if parsed, err := strconv.Atoi(number); err == nil {
		return util.FormatNumber(parsed, total), ep
	}
	return ep, ep
}
