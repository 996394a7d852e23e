package reconcile

import (
	"errors"
	"testing"

	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func q(v int) quality.Quality {
	found, _ := quality.ByValue(v)
	return found
}

func TestReconcile(t *testing.T) {
	Convey("Given a reconciler collecting warnings", t, func() {
		var warnings []string
		r := &Reconciler{Warn: func(msg string) { warnings = append(warnings, msg) }}
		resolved := &media.ResolvedMedia{Granted: q(32)}

		Convey("No requested quality is a no-op", func() {
			input := &media.InputItem{Title: "ep1"}
			So(r.Reconcile(input, resolved), ShouldBeNil)
			So(warnings, ShouldBeEmpty)
		})

		Convey("A granted request is a no-op", func() {
			input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(32))}
			So(r.Reconcile(input, resolved), ShouldBeNil)
			So(warnings, ShouldBeEmpty)
		})

		Convey("A downgrade is accepted with a warning when allowed", func() {
			input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(80)), AllowQualityDrop: true}
			So(r.Reconcile(input, resolved), ShouldBeNil)
			So(warnings, ShouldHaveLength, 1)
			So(warnings[0], ShouldContainSubstring, "1080P")
			So(warnings[0], ShouldContainSubstring, "480P")
		})

		Convey("A login tier downgrade fails with ErrLoginRequired", func() {
			input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(80))}
			err := r.Reconcile(input, resolved)
			So(errors.Is(err, ErrLoginRequired), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "ep1: ")
		})

		Convey("A subscription tier downgrade fails with ErrSubscriptionRequired", func() {
			input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(120))}
			So(errors.Is(r.Reconcile(input, resolved), ErrSubscriptionRequired), ShouldBeTrue)
		})

		Convey("A public tier mismatch fails with ErrFormatUnavailable", func() {
			resolved.Granted = q(16)
			input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(32))}
			So(errors.Is(r.Reconcile(input, resolved), ErrFormatUnavailable), ShouldBeTrue)
			So(warnings, ShouldBeEmpty)
		})
	})

	Convey("A zero reconciler logs instead of panicking", t, func() {
		var r *Reconciler
		input := &media.InputItem{Title: "ep1", Quality: mo.Some(q(80)), AllowQualityDrop: true}
		So(r.Reconcile(input, &media.ResolvedMedia{Granted: q(64)}), ShouldBeNil)
	})
}
