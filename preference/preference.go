// Package preference remembers choices between runs.
package preference

import (
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/quality"
	"github.com/dashgrab/dashgrab/where"
	"github.com/metafates/gache"
)

// Preference is what gets remembered.
type Preference struct {
	// Quality is the tier id of the last successful download, zero if none.
	Quality int `json:"quality"`
}

func cacher() *gache.Cache[Preference] {
	return gache.New[Preference](&gache.Options{
		Path:       where.Preference(),
		FileSystem: &filesystem.GacheFs{},
	})
}

// Load returns the stored preference, zero valued if nothing was stored yet.
func Load() (Preference, error) {
	p, expired, err := cacher().Get()
	if err != nil {
		return Preference{}, err
	}
	if expired {
		return Preference{}, nil
	}
	return p, nil
}

// RememberQuality stores q as the preferred quality.
func RememberQuality(q quality.Quality) error {
	p, err := Load()
	if err != nil {
		return err
	}

	p.Quality = q.Value
	return cacher().Set(p)
}

// Choose picks from available, highest first: the remembered quality or the
// best one not above it, else the best available.
func (p Preference) Choose(available []quality.Quality) (quality.Quality, bool) {
	if len(available) == 0 {
		return quality.Quality{}, false
	}

	if p.Quality > 0 {
		if q, ok := quality.AtMost(available, p.Quality); ok {
			return q, true
		}
	}

	return available[0], true
}
