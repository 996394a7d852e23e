package input

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Video is the current video: one item, the page chosen with ?p=.
type Video struct {
	Lister Lister
}

func (*Video) Name() string { return "video" }
func (*Video) DisplayName() string { return "Current video" }
func (*Video) Batch() bool { return false }
func (*Video) Match(u *url.URL) bool { return isVideoURL(u) }

func (v *Video) Inputs(ctx context.Context, u *url.URL) ([]*media.InputItem, error) {
	view, err := fetchView(ctx, v.Lister, u)
	if err != nil {
		return nil, err
	}

	item := &media.InputItem{
		AID:        view.AID,
		CID:        view.CID,
		Title:      util.CleanTitle(view.Title),
		DurationMs: view.Duration * 1000,
	}

	if len(view.Pages) > 1 {
		n := pageNumber(u)
		page, ok := lo.Find(view.Pages, func(p api.Page) bool { return p.Page == n })
		if !ok {
			return nil, fmt.Errorf("%s has no page %d", view.Title, n)
		}

		item.CID = page.CID
		item.Title = util.CleanTitle(fmt.Sprintf("%s - P%d %s", view.Title, page.Page, page.Part))
		item.DurationMs = page.Duration * 1000
	}

	return []*media.InputItem{item}, nil
}

// VideoBatch lists every page of a multi-part video.
type VideoBatch struct {
	Lister Lister
}

func (*VideoBatch) Name() string { return "video.batch" }
func (*VideoBatch) DisplayName() string { return "Current video (all parts)" }
func (*VideoBatch) Batch() bool { return true }
func (*VideoBatch) Match(u *url.URL) bool { return isVideoURL(u) }

func (v *VideoBatch) Inputs(ctx context.Context, u *url.URL) ([]*media.InputItem, error) {
	view, err := fetchView(ctx, v.Lister, u)
	if err != nil {
		return nil, err
	}

	if len(view.Pages) == 0 {
		return nil, fmt.Errorf("%s lists no parts", view.Title)
	}

	format := viper.GetString(key.BatchFilenameFormat)
	return lo.Map(view.Pages, func(p api.Page, _ int) *media.InputItem {
		return &media.InputItem{
			AID: view.AID,
			CID: p.CID,
			Title: util.FormatTitle(format, map[string]string{
				"n":     util.FormatNumber(p.Page, len(view.Pages)),
				"ep":    p.Part,
				"cid":   strconv.FormatInt(p.CID, 10),
				"aid":   strconv.FormatInt(view.AID, 10),
				"title": view.Title,
			}),
			AllowQualityDrop: true,
			DurationMs:       p.Duration * 1000,
		}
	}), nil
}

func fetchView(ctx context.Context, lister Lister, u *url.URL) (*api.View, error) {
	params, err := viewParams(u)
	if err != nil {
		return nil, err
	}

	view, err := lister.View(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	return view, nil
}
