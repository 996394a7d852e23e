// Package quality holds the fixed catalog of quality tiers known to the playback API.
//
// The catalog is read-only and safe to share between goroutines.
package quality

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// AccessTier is the authorization level gating a quality.
type AccessTier int

const (
	Public AccessTier = iota
	LoginRequired
	SubscriptionRequired
)

func (t AccessTier) String() string {
	switch t {
	case LoginRequired:
		return "login"
	case SubscriptionRequired:
		return "subscription"
	default:
		return "public"
	}
}

// MarshalText encodes the tier by name.
func (t AccessTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Quality is one tier of the catalog. Higher Value means higher quality.
type Quality struct {
	Value       int        `json:"value"`
	DisplayName string     `json:"displayName"`
	Access      AccessTier `json:"access"`
}

func (q Quality) String() string {
	return q.DisplayName
}

// catalog is ordered by Value, highest first.
var catalog = []Quality{
	{127, "8K", SubscriptionRequired},
	{126, "Dolby Vision", SubscriptionRequired},
	{125, "HDR", SubscriptionRequired},
	{120, "4K", SubscriptionRequired},
	{116, "1080P60", SubscriptionRequired},
	{112, "1080P+", SubscriptionRequired},
	{80, "1080P", LoginRequired},
	{74, "720P60", LoginRequired},
	{64, "720P", LoginRequired},
	{32, "480P", Public},
	{16, "360P", Public},
}

// All returns every known quality, highest first. The slice is a copy.
func All() []Quality {
	return append([]Quality(nil), catalog...)
}

// ByValue looks up a quality by its tier id.
func ByValue(v int) (Quality, bool) {
	return lo.Find(catalog, func(q Quality) bool {
		return q.Value == v
	})
}

// AccessTierOf reports the access tier a quality requires. Unknown ids are public.
func AccessTierOf(q Quality) AccessTier {
	known, ok := ByValue(q.Value)
	if !ok {
		return Public
	}
	return known.Access
}

// Known maps provider tier ids onto the catalog, dropping ids it does not know.
// Order of ids is preserved.
func Known(ids []int) []Quality {
	return lo.FilterMap(ids, func(id int, _ int) (Quality, bool) {
		return ByValue(id)
	})
}

// Parse accepts either a tier id ("80") or a display name ("1080p", case-insensitive).
func Parse(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		if q, ok := ByValue(v); ok {
			return q, nil
		}
		return Quality{}, fmt.Errorf("unknown quality id %d", v)
	}

	q, ok := lo.Find(catalog, func(q Quality) bool {
		return strings.EqualFold(q.DisplayName, s)
	})
	if !ok {
		return Quality{}, fmt.Errorf("unknown quality %q", s)
	}
	return q, nil
}

// AtMost returns the first quality in available whose value does not exceed v.
// available is expected in provider order, highest first.
func AtMost(available []Quality, v int) (Quality, bool) {
	return lo.Find(available, func(q Quality) bool {
		return q.Value <= v
	})
}
