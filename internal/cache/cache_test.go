package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/where"
	. "github.com/smartystreets/goconvey/convey"
)

type listing struct {
	Title string `json:"title"`
	Pages []int  `json:"pages"`
}

func TestCache(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv(where.EnvConfigPath, "/config")

		key := GenerateKey("view", "170001")

		Convey("Keys are stable and case-insensitive", func() {
			So(GenerateKey("View", "170001"), ShouldEqual, key)
			So(GenerateKey("view", "170002"), ShouldNotEqual, key)
		})

		Convey("A written entry can be read back", func() {
			So(Write(key, listing{Title: "demo", Pages: []int{1, 2}}), ShouldBeNil)

			var got listing
			So(Read(key, &got), ShouldBeTrue)
			So(got.Title, ShouldEqual, "demo")
			So(got.Pages, ShouldResemble, []int{1, 2})
		})

		Convey("Missing entries are misses", func() {
			var got listing
			So(Read("nope", &got), ShouldBeFalse)
		})

		Convey("Expired entries are misses and get collected", func() {
			So(Write(key, listing{Title: "old"}), ShouldBeNil)
			old := time.Now().Add(-2 * TTL)
			So(filesystem.API().Chtimes(filepath.Join(where.Listings(), key), old, old), ShouldBeNil)

			var got listing
			So(Read(key, &got), ShouldBeFalse)

			removed, err := CollectGarbage()
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 1)
		})

		Convey("Corrupt entries are misses", func() {
			So(filesystem.API().WriteFile(filepath.Join(where.Listings(), key), []byte("{"), 0644), ShouldBeNil)
			var got listing
			So(Read(key, &got), ShouldBeFalse)
		})
	})
}
