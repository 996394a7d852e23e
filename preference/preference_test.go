package preference

import (
	"testing"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/dashgrab/dashgrab/where"
	. "github.com/smartystreets/goconvey/convey"
)

func q(v int) quality.Quality {
	found, _ := quality.ByValue(v)
	return found
}

func TestPreference(t *testing.T) {
	Convey("Given an empty config directory", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv(where.EnvConfigPath, "/config")

		Convey("Nothing is remembered", func() {
			p, err := Load()
			So(err, ShouldBeNil)
			So(p.Quality, ShouldEqual, 0)
		})

		Convey("A remembered quality survives a reload", func() {
			So(RememberQuality(q(64)), ShouldBeNil)

			p, err := Load()
			So(err, ShouldBeNil)
			So(p.Quality, ShouldEqual, 64)

			exists, err := filesystem.API().Exists(where.Preference())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})

	Convey("Choose", t, func() {
		available := []quality.Quality{q(80), q(64), q(32)}

		Convey("takes the best when nothing is remembered", func() {
			got, ok := Preference{}.Choose(available)
			So(ok, ShouldBeTrue)
			So(got.Value, ShouldEqual, 80)
		})

		Convey("takes the remembered quality when offered", func() {
			got, _ := Preference{Quality: 64}.Choose(available)
			So(got.Value, ShouldEqual, 64)
		})

		Convey("takes the best one below the remembered quality", func() {
			got, _ := Preference{Quality: 74}.Choose(available)
			So(got.Value, ShouldEqual, 64)
		})

		Convey("falls back to the best when everything is above", func() {
			got, _ := Preference{Quality: 16}.Choose(available)
			So(got.Value, ShouldEqual, 80)
		})

		Convey("reports nothing for an empty list", func() {
			_, ok := Preference{Quality: 16}.Choose(nil)
			So(ok, ShouldBeFalse)
		})
	})
}
