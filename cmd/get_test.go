package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/config"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/output"
	"github.com/dashgrab/dashgrab/quality"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

const viewFixture = `{"code":0,"message":"0","data":{
  "aid": 170001, "bvid": "BV17x411w7KC", "cid": 279786, "title": "Sample: video",
  "duration": 120,
  "pages": [{"cid": 279786, "page": 1, "part": "main", "duration": 120}]
}}`

const playFixture = `{"code":0,"message":"0","data":{
  "quality": 80,
  "accept_quality": [116, 80, 64, 32],
  "dash": {
    "duration": 120,
    "video": [
      {"id": 80, "baseUrl": "https://upos.example/80-avc.m4s", "bandwidth": 800000, "codecid": 7},
      {"id": 80, "baseUrl": "https://upos.example/80-hevc.m4s", "bandwidth": 500000, "codecid": 12}
    ],
    "audio": [
      {"id": 30280, "baseUrl": "https://upos.example/audio.m4s", "bandwidth": 192000, "codecid": 0}
    ]
  }
}}`

func newTestPipeline(srv *httptest.Server) (*pipeline, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	client := api.New(srv.Client(), srv.URL)
	return newPipeline(client, &stdout, &stderr), &stdout, &stderr
}

func testOptions(target string) getOptions {
	return getOptions{
		Target:      target,
		Format:      "video.dash.avc",
		Output:      "links",
		Assets:      []string{},
		MaxItems:    32,
		Concurrency: 2,
	}
}

func TestPipeline(t *testing.T) {
	Convey("Given an API serving one video", t, func() {
		t.Setenv("DASHGRAB_CONFIG_PATH", "/config")
		So(config.Setup(), ShouldBeNil)
		viper.Set(key.APIPageBaseURL, "https://www.bilibili.com")

		var playCalls atomic.Int32
		var lastQn atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/x/web-interface/view":
				_, _ = w.Write([]byte(viewFixture))
			case "/x/player/playurl":
				playCalls.Add(1)
				lastQn.Store(r.URL.Query().Get("qn"))
				_, _ = w.Write([]byte(playFixture))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		p, stdout, stderr := newTestPipeline(srv)

		Convey("Links of the granted quality are printed", func() {
			err := p.run(context.Background(), testOptions("BV17x411w7KC"))
			So(err, ShouldBeNil)

			So(stdout.String(), ShouldContainSubstring, "Sample_ video.mp4\thttps://upos.example/80-avc.m4s")
			So(stdout.String(), ShouldContainSubstring, "Sample_ video.m4a\thttps://upos.example/audio.m4s")
			So(stderr.String(), ShouldContainSubstring, "1080P")
			So(playCalls.Load(), ShouldEqual, 2)
			So(lastQn.Load(), ShouldEqual, "80")
		})

		Convey("An explicit quality skips the sample resolution", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Quality = "1080P"

			So(p.run(context.Background(), opts), ShouldBeNil)
			So(playCalls.Load(), ShouldEqual, 1)
		})

		Convey("A quality above the granted one fails without allow-drop", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Quality = "116"

			err := p.run(context.Background(), opts)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "requested 1080P60")
		})

		Convey("With allow-drop the lower quality is accepted with a warning", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Quality = "116"
			opts.AllowDrop = true

			So(p.run(context.Background(), opts), ShouldBeNil)
			So(stderr.String(), ShouldContainSubstring, "requested 1080P60, got 1080P")
		})

		Convey("The hevc format picks the hevc stream", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Format = "video.dash.hevc"

			So(p.run(context.Background(), opts), ShouldBeNil)
			So(stdout.String(), ShouldContainSubstring, "80-hevc.m4s")
		})

		Convey("Unknown names suggest the closest one", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Format = "video.dash.avd"

			err := p.run(context.Background(), opts)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "video.dash.avc")

			opts = testOptions("BV17x411w7KC")
			opts.Output = "link"
			err = p.run(context.Background(), opts)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "links")
		})

		Convey("A missing player fails before any playback request", func() {
			previous := output.MPVBinary
			output.MPVBinary = "dashgrab-no-such-player"
			defer func() { output.MPVBinary = previous }()

			opts := testOptions("BV17x411w7KC")
			opts.Output = "mpv"

			err := p.run(context.Background(), opts)
			So(err, ShouldNotBeNil)
			So(stderr.String(), ShouldContainSubstring, "dashgrab-no-such-player")
			So(playCalls.Load(), ShouldEqual, 0)
		})

		Convey("An input that does not apply to the url is rejected", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Input = "bangumi.batch"

			_, err := p.pickInput("x", opts, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("The json output and metadata asset go to files", func() {
			opts := testOptions("BV17x411w7KC")
			opts.Output = "json"
			opts.Out = "/downloads/manifest.json"
			opts.Assets = []string{"metadata"}

			So(p.run(context.Background(), opts), ShouldBeNil)

			manifest, err := filesystem.API().ReadFile("/downloads/manifest.json")
			So(err, ShouldBeNil)
			So(string(manifest), ShouldContainSubstring, "80-avc.m4s")

			exists, _ := filesystem.API().Exists("/downloads/Sample_ video.info.json")
			So(exists, ShouldBeTrue)
		})
	})
}

func multiPageView(bvid string, pages int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `{"code":0,"message":"0","data":{"aid": 170002, "bvid": %q, "cid": 1000, "title": "Series", "duration": 60, "pages": [`, bvid)
	for i := 1; i <= pages; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"cid": %d, "page": %d, "part": "part%d", "duration": 60}`, 1000+i, i, i)
	}
	sb.WriteString("]}}")
	return sb.String()
}

func TestPipelineBatch(t *testing.T) {
	Convey("Given a video with eight parts", t, func() {
		t.Setenv("DASHGRAB_CONFIG_PATH", "/config")
		So(config.Setup(), ShouldBeNil)
		viper.Set(key.APIPageBaseURL, "https://www.bilibili.com")

		const bvid = "BV1Ab411c7mD"
		var playCalls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/x/web-interface/view":
				_, _ = w.Write([]byte(multiPageView(bvid, 8)))
			case "/x/player/playurl":
				playCalls.Add(1)
				_, _ = w.Write([]byte(playFixture))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		p, stdout, stderr := newTestPipeline(srv)

		Convey("Every part is resolved and each downgrade is reported once", func() {
			opts := testOptions(bvid)
			opts.Input = "video.batch"
			opts.Select = "all"
			opts.Quality = "116"
			opts.Concurrency = 8

			So(p.run(context.Background(), opts), ShouldBeNil)

			So(playCalls.Load(), ShouldEqual, 8)
			So(strings.Count(stdout.String(), "80-avc.m4s"), ShouldEqual, 8)
			So(strings.Count(stdout.String(), "audio.m4s"), ShouldEqual, 8)
			So(strings.Count(stderr.String(), "requested 1080P60, got 1080P\n"), ShouldEqual, 8)
		})

		Convey("A selector narrows the parts", func() {
			opts := testOptions(bvid)
			opts.Input = "video.batch"
			opts.Select = "2-3"

			So(p.run(context.Background(), opts), ShouldBeNil)
			So(strings.Count(stdout.String(), "80-avc.m4s"), ShouldEqual, 2)
			So(stdout.String(), ShouldContainSubstring, "part2")
			So(stdout.String(), ShouldNotContainSubstring, "part1")
		})
	})
}

func TestPickQuality(t *testing.T) {
	Convey("Given an explicit quality", t, func() {
		p := &pipeline{}

		Convey("Names and ids are parsed", func() {
			q, err := p.pickQuality(context.Background(), nil, nil, getOptions{Quality: "720P"})
			So(err, ShouldBeNil)
			So(q.MustGet().Value, ShouldEqual, 64)
		})

		Convey("Unknown qualities are rejected", func() {
			_, err := p.pickQuality(context.Background(), nil, nil, getOptions{Quality: "9000P"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Known qualities round trip through the catalog", t, func() {
		q, ok := quality.ByValue(80)
		So(ok, ShouldBeTrue)
		So(q.DisplayName, ShouldEqual, "1080P")
	})
}

func TestClosest(t *testing.T) {
	Convey("closest picks the smallest edit distance", t, func() {
		name, ok := closest("aira2", []string{"links", "json", "aria2"})
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "aria2")

		_, ok = closest("x", nil)
		So(ok, ShouldBeFalse)
	})
}
