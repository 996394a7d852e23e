package config

import (
	"testing"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.DownloadFormat), ShouldEqual, "video.dash.avc")
			So(viper.GetInt(key.BatchMaxItems), ShouldEqual, 32)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("batch.filename_format")
			So(result, ShouldEqual, "batch_filename_format")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.BatchConcurrency]

		Convey("Env is prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "DASHGRAB_BATCH_CONCURRENCY")
		})

		Convey("typeName reflects the default value", func() {
			So(field.typeName(), ShouldEqual, "int")
			assets := Default[key.AssetsDefault]
			So(assets.typeName(), ShouldEqual, "[]string")
		})
	})
}

func TestFieldParse(t *testing.T) {
	Convey("Given fields of every type", t, func() {
		Convey("Integers are parsed", func() {
			f := Default[key.BatchConcurrency]
			v, err := f.Parse([]string{"8"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 8)

			_, err = f.Parse([]string{"eight"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are parsed", func() {
			f := Default[key.DownloadAllowQualityDrop]
			v, err := f.Parse([]string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Lists keep every value", func() {
			f := Default[key.AssetsDefault]
			v, err := f.Parse([]string{"metadata", "covers"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"metadata", "covers"})
		})

		Convey("Strings take the first value", func() {
			f := Default[key.DownloadFormat]
			v, err := f.Parse([]string{"video.flv"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "video.flv")
		})

		Convey("An empty value list is rejected", func() {
			f := Default[key.DownloadFormat]
			_, err := f.Parse(nil)
			So(err, ShouldNotBeNil)
		})
	})
}
