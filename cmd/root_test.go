package cmd

import (
	"bytes"
	"testing"

	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestVerbose(t *testing.T) {
	Convey("Given the verbose flag", t, func() {
		So(rootCmd.PersistentFlags().Lookup("verbose"), ShouldNotBeNil)

		var buf bytes.Buffer
		defer func() {
			viper.Set(key.LogsWrite, false)
			So(log.Setup(), ShouldBeNil)
		}()

		Convey("Debug entries reach the writer when set", func() {
			applyVerbose(&buf, true)
			log.Debug("resolving page 2")
			So(buf.String(), ShouldContainSubstring, "resolving page 2")
		})

		Convey("Nothing is redirected when unset", func() {
			viper.Set(key.LogsWrite, false)
			So(log.Setup(), ShouldBeNil)

			applyVerbose(&buf, false)
			log.Debug("resolving page 2")
			So(buf.String(), ShouldBeEmpty)
		})
	})
}
