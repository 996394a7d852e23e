package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
	})
}

func TestCleanTitle(t *testing.T) {
	Convey("CleanTitle keeps spaces and replaces reserved characters", t, func() {
		So(CleanTitle(" P1 intro: part/one "), ShouldEqual, "P1 intro_ part_one")
		So(CleanTitle("what?"), ShouldEqual, "what_")
	})
}

func TestFormatNumber(t *testing.T) {
	Convey("FormatNumber pads to the width of the total", t, func() {
		So(FormatNumber(3, 9), ShouldEqual, "3")
		So(FormatNumber(3, 12), ShouldEqual, "03")
		So(FormatNumber(3, 120), ShouldEqual, "003")
		So(FormatNumber(1, 0), ShouldEqual, "1")
	})
}

func TestFormatTitle(t *testing.T) {
	Convey("FormatTitle", t, func() {
		vars := map[string]string{"n": "01", "ep": "Opening"}

		Convey("Known variables are substituted", func() {
			So(FormatTitle("[n] - [ep]", vars), ShouldEqual, "01 - Opening")
		})

		Convey("Unknown variables are left untouched", func() {
			So(FormatTitle("[n] [cid]", vars), ShouldEqual, "01 [cid]")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`/video/(?P<bvid>BV\w+)`)
		So(ReGroups(re, "https://www.bilibili.com/video/BV1xx411c7mD?p=2")["bvid"], ShouldEqual, "BV1xx411c7mD")
		So(ReGroups(re, "https://example.com"), ShouldBeEmpty)
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("assets/danmaku.lua"), ShouldEqual, "danmaku")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}
