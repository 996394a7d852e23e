package input

import (
	"context"
	"strconv"

	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/internal/cache"
	"github.com/dashgrab/dashgrab/log"
)

// Cached wraps a Lister and keeps its answers on disk for cache.TTL.
type Cached struct {
	Lister Lister
}

func (c Cached) View(ctx context.Context, params api.ViewParams) (*api.View, error) {
	key := cache.GenerateKey("view", params.BVID, strconv.FormatInt(params.AID, 10))

	var view api.View
	if cache.Read(key, &view) {
		log.WithField("key", key).Debug("view served from cache")
		return &view, nil
	}

	fresh, err := c.Lister.View(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(key, fresh); err != nil {
		log.Warnf("failed to cache view: %s", err)
	}
	return fresh, nil
}

func (c Cached) SeasonSection(ctx context.Context, seasonID int64) (*api.SeasonSection, error) {
	key := cache.GenerateKey("season", strconv.FormatInt(seasonID, 10))

	var section api.SeasonSection
	if cache.Read(key, &section) {
		log.WithField("key", key).Debug("season served from cache")
		return &section, nil
	}

	fresh, err := c.Lister.SeasonSection(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(key, fresh); err != nil {
		log.Warnf("failed to cache season: %s", err)
	}
	return fresh, nil
}
