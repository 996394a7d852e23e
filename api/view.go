package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ViewParams identifies a video by either id form.
type ViewParams struct {
	AID  int64
	BVID string
}

// Page is one part of a multi-part video. Duration is in seconds.
type Page struct {
	CID      int64  `json:"cid"`
	Page     int    `json:"page"`
	Part     string `json:"part"`
	Duration int64  `json:"duration"`
}

// View describes a video and its pages.
type View struct {
	AID      int64  `json:"aid"`
	BVID     string `json:"bvid"`
	CID      int64  `json:"cid"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Duration int64  `json:"duration"`
	Pages    []Page `json:"pages"`
}

// View fetches the description of a video.
func (c *Client) View(ctx context.Context, params ViewParams) (*View, error) {
	q := url.Values{}
	switch {
	case params.BVID != "":
		q.Set("bvid", params.BVID)
	case params.AID > 0:
		q.Set("aid", strconv.FormatInt(params.AID, 10))
	default:
		return nil, errors.New("view: aid or bvid is required")
	}

	var data View
	if err := c.get(ctx, "/x/web-interface/view", q, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Episode is one entry of a season section.
type Episode struct {
	ID        int64  `json:"id"`
	AID       int64  `json:"aid"`
	CID       int64  `json:"cid"`
	Title     string `json:"title"`
	LongTitle string `json:"long_title"`
}

// SeasonSection lists the episodes of a season.
type SeasonSection struct {
	MainSection struct {
		ID       int64     `json:"id"`
		Title    string    `json:"title"`
		Episodes []Episode `json:"episodes"`
	} `json:"main_section"`
}

// SeasonSection fetches the main section of a season.
func (c *Client) SeasonSection(ctx context.Context, seasonID int64) (*SeasonSection, error) {
	q := url.Values{}
	q.Set("season_id", strconv.FormatInt(seasonID, 10))

	var data SeasonSection
	if err := c.get(ctx, "/pgc/web/season/section", q, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
