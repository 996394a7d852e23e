package input

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type fakeLister struct {
	view       *api.View
	section    *api.SeasonSection
	viewParams api.ViewParams
	seasonID   int64
	calls      int
}

func (f *fakeLister) View(_ context.Context, params api.ViewParams) (*api.View, error) {
	f.calls++
	f.viewParams = params
	if f.view == nil {
		return nil, &api.Error{Code: -404, Message: "not found"}
	}
	return f.view, nil
}

func (f *fakeLister) SeasonSection(_ context.Context, seasonID int64) (*api.SeasonSection, error) {
	f.calls++
	f.seasonID = seasonID
	return f.section, nil
}

type fakePages string

func (p fakePages) Fetch(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(p))), nil
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	So(err, ShouldBeNil)
	return u
}

func multipart() *api.View {
	return &api.View{
		AID:   170001,
		CID:   11,
		Title: "Demo: a/b",
		Pages: []api.Page{
			{CID: 11, Page: 1, Part: "Intro", Duration: 60},
			{CID: 12, Page: 2, Part: "Main", Duration: 120},
		},
	}
}

func titles(items []*media.InputItem) []string {
	return lo.Map(items, func(i *media.InputItem, _ int) string { return i.Title })
}

func TestMatching(t *testing.T) {
	Convey("Providers match by url", t, func() {
		providers := Registry(&fakeLister{}, fakePages(""))

		names := func(raw string) []string {
			return lo.Map(Matching(providers, mustParse(raw)), func(p Provider, _ int) string { return p.Name() })
		}

		So(names("https://www.bilibili.com/video/BV1xx411c7mD"), ShouldResemble, []string{"video", "video.batch"})
		So(names("https://www.bilibili.com/video/av170001?p=2"), ShouldResemble, []string{"video", "video.batch"})
		So(names("https://www.bilibili.com/bangumi/play/ss33"), ShouldResemble, []string{"bangumi.batch"})
		So(names("https://www.bilibili.com/bangumi/play/ep100"), ShouldResemble, []string{"bangumi.batch"})
		So(names("https://www.bilibili.com/read/cv1"), ShouldBeEmpty)

		p, ok := Find(providers, "video.batch")
		So(ok, ShouldBeTrue)
		So(p.Batch(), ShouldBeTrue)
	})
}

func TestVideo(t *testing.T) {
	ctx := context.Background()

	Convey("Given a multi-part video", t, func() {
		viper.Set(key.BatchFilenameFormat, "[n] - [ep]")
		lister := &fakeLister{view: multipart()}

		Convey("video picks the page from ?p=", func() {
			items, err := (&Video{Lister: lister}).Inputs(ctx, mustParse("https://www.bilibili.com/video/av170001?p=2"))
			So(err, ShouldBeNil)
			So(lister.viewParams.AID, ShouldEqual, 170001)
			So(items, ShouldHaveLength, 1)
			So(items[0].CID, ShouldEqual, 12)
			So(items[0].Title, ShouldEqual, "Demo_ a_b - P2 Main")
			So(items[0].AllowQualityDrop, ShouldBeFalse)
			So(items[0].DurationMs, ShouldEqual, 120_000)
		})

		Convey("video rejects a missing page", func() {
			_, err := (&Video{Lister: lister}).Inputs(ctx, mustParse("https://www.bilibili.com/video/av170001?p=9"))
			So(err, ShouldNotBeNil)
		})

		Convey("video.batch lists every page with the filename format", func() {
			items, err := (&VideoBatch{Lister: lister}).Inputs(ctx, mustParse("https://www.bilibili.com/video/BV1xx411c7mD"))
			So(err, ShouldBeNil)
			So(lister.viewParams.BVID, ShouldEqual, "BV1xx411c7mD")
			So(titles(items), ShouldResemble, []string{"1 - Intro", "2 - Main"})
			So(items[1].AID, ShouldEqual, 170001)
			So(items[1].AllowQualityDrop, ShouldBeTrue)
		})

		Convey("API failures are wrapped", func() {
			lister.view = nil
			_, err := (&VideoBatch{Lister: lister}).Inputs(ctx, mustParse("https://www.bilibili.com/video/av1"))

			var apiErr *api.Error
			So(errors.As(err, &apiErr), ShouldBeTrue)
		})
	})

	Convey("A single-part video keeps the plain title", t, func() {
		lister := &fakeLister{view: &api.View{AID: 1, CID: 2, Title: "Solo", Pages: []api.Page{{CID: 2, Page: 1}}}}
		items, err := (&Video{Lister: lister}).Inputs(ctx, mustParse("https://www.bilibili.com/video/av1"))
		So(err, ShouldBeNil)
		So(items[0].Title, ShouldEqual, "Solo")
		So(items[0].CID, ShouldEqual, 2)
	})
}

func season() *api.SeasonSection {
	s := &api.SeasonSection{}
	s.MainSection.Title = "Show"
	s.MainSection.Episodes = []api.Episode{
		{AID: 1, CID: 10, Title: "1", LongTitle: "Start"},
		{AID: 2, CID: 20, Title: "2", LongTitle: "Middle"},
		{AID: 3, CID: 30, Title: "SP"},
	}
	return s
}

func TestBangumi(t *testing.T) {
	ctx := context.Background()

	Convey("Given a season", t, func() {
		viper.Set(key.BatchFilenameFormat, "[n] - [ep]")
		lister := &fakeLister{section: season()}

		Convey("ss urls carry the season id", func() {
			b := &BangumiBatch{Lister: lister}
			items, err := b.Inputs(ctx, mustParse("https://www.bilibili.com/bangumi/play/ss33"))
			So(err, ShouldBeNil)
			So(lister.seasonID, ShouldEqual, 33)
			So(titles(items), ShouldResemble, []string{"1 - Start", "2 - Middle", "3 - SP"})
			So(items[2].CID, ShouldEqual, 30)
		})

		Convey("ep urls read the season id from the page", func() {
			page := `<html><head><meta property="og:url" content="https://www.bilibili.com/bangumi/play/ss42/"></head></html>`
			b := &BangumiBatch{Lister: lister, Pages: fakePages(page)}
			_, err := b.Inputs(ctx, mustParse("https://www.bilibili.com/bangumi/play/ep100"))
			So(err, ShouldBeNil)
			So(lister.seasonID, ShouldEqual, 42)
		})

		Convey("pages without og:url fail", func() {
			b := &BangumiBatch{Lister: lister, Pages: fakePages("<html></html>")}
			_, err := b.Inputs(ctx, mustParse("https://www.bilibili.com/bangumi/play/ep100"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Episode names", t, func() {
		n, ep := episodeNames(api.Episode{Title: "PV", LongTitle: "Trailer"}, 0, 12)
		So(n, ShouldEqual, "Trailer")
		So(ep, ShouldEqual, "Trailer")

		n, ep = episodeNames(api.Episode{Title: "3", LongTitle: "Third"}, 2, 12)
		So(n, ShouldEqual, "03")
		So(ep, ShouldEqual, "Third")
	})
}

func TestSelector(t *testing.T) {
	items := make([]*media.InputItem, 5)
	for i, title := range []string{"Opening", "Battle", "Ending", "Extra battle", "Credits"} {
		items[i] = &media.InputItem{Title: title}
	}

	selected := func(description string) []string {
		s, err := ParseSelector(description)
		So(err, ShouldBeNil)
		return titles(s(items))
	}

	Convey("Selectors", t, func() {
		So(selected("all"), ShouldHaveLength, 5)
		So(selected("first"), ShouldResemble, []string{"Opening"})
		So(selected("last"), ShouldResemble, []string{"Credits"})
		So(selected("2"), ShouldResemble, []string{"Battle"})
		So(selected("9"), ShouldBeEmpty)
		So(selected("2-3"), ShouldResemble, []string{"Battle", "Ending"})
		So(selected("4-99"), ShouldResemble, []string{"Extra battle", "Credits"})
		So(selected("@btl@"), ShouldResemble, []string{"Battle", "Extra battle"})
		So(selected("last, 1, first"), ShouldResemble, []string{"Opening", "Credits"})

		for _, bad := range []string{"", "x", "3-1", "0", "a-b", "1,,2"} {
			_, err := ParseSelector(bad)
			So(err, ShouldNotBeNil)
		}

		So(titles(DefaultSelector(2)(items)), ShouldResemble, []string{"Opening", "Battle"})
		So(DefaultSelector(0)(items), ShouldHaveLength, 5)
		So(DefaultSelector(10)(items), ShouldHaveLength, 5)
	})
}

func TestCached(t *testing.T) {
	ctx := context.Background()

	Convey("Cached listings hit the lister once", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv(where.EnvConfigPath, "/config")

		lister := &fakeLister{view: multipart(), section: season()}
		cached := Cached{Lister: lister}

		for i := 0; i < 2; i++ {
			view, err := cached.View(ctx, api.ViewParams{AID: 170001})
			So(err, ShouldBeNil)
			So(view.Pages, ShouldHaveLength, 2)

			section, err := cached.SeasonSection(ctx, 33)
			So(err, ShouldBeNil)
			So(section.MainSection.Episodes, ShouldHaveLength, 3)
		}
		So(lister.calls, ShouldEqual, 2)
	})
}

func TestParseTarget(t *testing.T) {
	Convey("Targets", t, func() {
		base := "https://www.bilibili.com/"

		u, err := ParseTarget("BV1xx411c7mD", base)
		So(err, ShouldBeNil)
		So(u.String(), ShouldEqual, "https://www.bilibili.com/video/BV1xx411c7mD")

		u, err = ParseTarget("av170001", base)
		So(err, ShouldBeNil)
		So(u.Path, ShouldEqual, "/video/av170001")

		u, err = ParseTarget(" ep100 ", base)
		So(err, ShouldBeNil)
		So(u.Path, ShouldEqual, "/bangumi/play/ep100")

		u, err = ParseTarget("https://www.bilibili.com/video/av1?p=3", base)
		So(err, ShouldBeNil)
		So(u.Query().Get("p"), ShouldEqual, "3")

		_, err = ParseTarget("hello", base)
		So(err, ShouldNotBeNil)
	})
}
