package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const playURLBody = `{
  "code": 0,
  "message": "0",
  "data": {
    "quality": 64,
    "accept_quality": [80, 64, 32, 16],
    "dash": {
      "duration": 120,
      "video": [
        {"id": 64, "baseUrl": "http://upos.example/64-avc.m4s", "backupUrl": ["http://bak.example/64-avc.m4s"], "bandwidth": 900000, "codecid": 7},
        {"id": 64, "base_url": "http://upos.example/64-hevc.m4s", "backup_url": ["http://bak.example/64-hevc.m4s"], "bandwidth": 600000, "codecid": 12}
      ],
      "audio": [
        {"id": 30280, "baseUrl": "http://upos.example/a.m4s", "bandwidth": 192000, "codecid": 0}
      ]
    }
  }
}`

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	server := httptest.NewServer(handler)
	return New(server.Client(), server.URL+"/"), server.Close
}

func TestPlayURL(t *testing.T) {
	Convey("Given a playback endpoint", t, func() {
		var got *http.Request
		client, closeServer := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			got = r
			_, _ = w.Write([]byte(playURLBody))
		})
		defer closeServer()

		Convey("The request carries ids, quality hint and capability flags", func() {
			_, err := client.WithSession("token").PlayURL(context.Background(), PlayURLParams{AID: 10, CID: 20, Quality: 80, Fnval: FnvalDash})
			So(err, ShouldBeNil)
			So(got.URL.Path, ShouldEqual, "/x/player/playurl")
			So(got.URL.Query().Get("avid"), ShouldEqual, "10")
			So(got.URL.Query().Get("cid"), ShouldEqual, "20")
			So(got.URL.Query().Get("qn"), ShouldEqual, "80")
			So(got.URL.Query().Get("fnval"), ShouldEqual, "4048")
			So(got.Header.Get("Referer"), ShouldNotBeEmpty)

			cookie, err := got.Cookie("SESSDATA")
			So(err, ShouldBeNil)
			So(cookie.Value, ShouldEqual, "token")
		})

		Convey("An unset quality is sent empty", func() {
			_, err := client.PlayURL(context.Background(), PlayURLParams{AID: 10, CID: 20})
			So(err, ShouldBeNil)
			So(got.URL.Query().Has("qn"), ShouldBeTrue)
			So(got.URL.Query().Get("qn"), ShouldEqual, "")
			_, err = got.Cookie("SESSDATA")
			So(err, ShouldNotBeNil)
		})

		Convey("Both URL spellings are decoded", func() {
			data, err := client.PlayURL(context.Background(), PlayURLParams{AID: 10, CID: 20})
			So(err, ShouldBeNil)
			So(data.Quality, ShouldEqual, 64)
			So(data.AcceptQuality, ShouldResemble, []int{80, 64, 32, 16})
			So(data.Dash.Video, ShouldHaveLength, 2)
			So(data.Dash.Video[0].URL(), ShouldEqual, "http://upos.example/64-avc.m4s")
			So(data.Dash.Video[1].URL(), ShouldEqual, "http://upos.example/64-hevc.m4s")
			So(data.Dash.Video[1].Backups(), ShouldResemble, []string{"http://bak.example/64-hevc.m4s"})
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("A non-zero code is an application error", t, func() {
		client, closeServer := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code": -404, "message": "nothing here"}`))
		})
		defer closeServer()

		_, err := client.PlayURL(context.Background(), PlayURLParams{AID: 1, CID: 2})
		var apiErr *Error
		So(errors.As(err, &apiErr), ShouldBeTrue)
		So(apiErr.Code, ShouldEqual, -404)
		So(apiErr.Message, ShouldEqual, "nothing here")
	})

	Convey("A non-200 status is a transport error", t, func() {
		client, closeServer := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer closeServer()

		_, err := client.View(context.Background(), ViewParams{AID: 1})
		So(err, ShouldNotBeNil)
		var apiErr *Error
		So(errors.As(err, &apiErr), ShouldBeFalse)
	})

	Convey("View requires an id", t, func() {
		client := New(http.DefaultClient, "http://unused")
		_, err := client.View(context.Background(), ViewParams{})
		So(err, ShouldNotBeNil)
	})
}

func TestSeasonSection(t *testing.T) {
	Convey("Season sections are read from the result field", t, func() {
		var seasonID string
		client, closeServer := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			seasonID = r.URL.Query().Get("season_id")
			_, _ = w.Write([]byte(`{"code":0,"message":"success","result":{"main_section":{"episodes":[
				{"aid":1,"cid":11,"title":"1","long_title":"Departure"},
				{"aid":2,"cid":22,"title":"PV","long_title":""}
			]}}}`))
		})
		defer closeServer()

		section, err := client.SeasonSection(context.Background(), 33)
		So(err, ShouldBeNil)
		So(seasonID, ShouldEqual, "33")
		So(section.MainSection.Episodes, ShouldHaveLength, 2)
		So(section.MainSection.Episodes[0].LongTitle, ShouldEqual, "Departure")
	})
}
