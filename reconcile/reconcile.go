// Package reconcile compares the quality an item asked for with the quality the provider granted.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/quality"
)

var (
	ErrSubscriptionRequired = errors.New("the requested quality needs a paid subscription")
	ErrLoginRequired        = errors.New("the requested quality needs a login")
	ErrFormatUnavailable    = errors.New("the requested quality is not available in this format")
)

// Reconciler accepts or rejects quality downgrades.
type Reconciler struct {
	// Warn receives downgrade notices. Defaults to log.Warn.
	// It is called from concurrent resolutions and must be safe for concurrent use.
	Warn func(msg string)
}

// Reconcile is a no-op when no quality was requested or the request was honored.
// A downgrade is accepted with a warning when the item allows it, otherwise
// the error names the access tier the requested quality needs.
func (r *Reconciler) Reconcile(input *media.InputItem, resolved *media.ResolvedMedia) error {
	requested, ok := input.Quality.Get()
	if !ok || requested.Value == resolved.Granted.Value {
		return nil
	}

	if input.AllowQualityDrop {
		r.warn(fmt.Sprintf("%s: requested %s, got %s", input.Title, requested, resolved.Granted))
		return nil
	}

	var err error
	switch quality.AccessTierOf(requested) {
	case quality.SubscriptionRequired:
		err = ErrSubscriptionRequired
	case quality.LoginRequired:
		err = ErrLoginRequired
	default:
		err = ErrFormatUnavailable
	}

	return fmt.Errorf("%s: %w (requested %s, got %s)", input.Title, err, requested, resolved.Granted)
}

func (r *Reconciler) warn(msg string) {
	if r != nil && r.Warn != nil {
		r.Warn(msg)
		return
	}
	log.Warn(msg)
}
