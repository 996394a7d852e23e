package api

import (
	"context"
	"net/url"
	"strconv"
)

// Capability flags sent as fnval.
const (
	// FnvalFLV asks for monolithic byte-range parts.
	FnvalFLV = 0
	// FnvalDash asks for segmented streams with every optional representation:
	// dash(16) | hdr(64) | 4k(128) | dolby audio(256) | dolby vision(512) | 8k(1024) | av1(2048).
	FnvalDash = 16 | 64 | 128 | 256 | 512 | 1024 | 2048
)

// PlayURLParams selects the content and format of a playback manifest.
type PlayURLParams struct {
	AID int64
	CID int64
	// Quality is the requested tier id, zero when unset.
	Quality int
	Fnval   int
}

func (p PlayURLParams) values() url.Values {
	q := url.Values{}
	q.Set("avid", strconv.FormatInt(p.AID, 10))
	q.Set("cid", strconv.FormatInt(p.CID, 10))
	if p.Quality > 0 {
		q.Set("qn", strconv.Itoa(p.Quality))
	} else {
		q.Set("qn", "")
	}
	q.Set("otype", "json")
	q.Set("fourk", "1")
	q.Set("fnver", "0")
	q.Set("fnval", strconv.Itoa(p.Fnval))
	return q
}

// PlayURL is the playback manifest.
type PlayURL struct {
	Quality           int      `json:"quality"`
	Format            string   `json:"format"`
	AcceptQuality     []int    `json:"accept_quality"`
	AcceptDescription []string `json:"accept_description"`
	Dash              *Dash    `json:"dash"`
	Durl              []Durl   `json:"durl"`
}

// Dash is the segmented manifest. Duration is in seconds.
type Dash struct {
	Duration int64        `json:"duration"`
	Video    []DashStream `json:"video"`
	Audio    []DashStream `json:"audio"`
	Dolby    *struct {
		Audio []DashStream `json:"audio"`
	} `json:"dolby"`
	Flac *struct {
		Audio *DashStream `json:"audio"`
	} `json:"flac"`
}

// DashStream is one representation. The provider spells URL fields both in
// camel and snake case depending on the endpoint version.
type DashStream struct {
	ID             int      `json:"id"`
	BaseURL        string   `json:"baseUrl"`
	BaseURLSnake   string   `json:"base_url"`
	BackupURL      []string `json:"backupUrl"`
	BackupURLSnake []string `json:"backup_url"`
	Bandwidth      int64    `json:"bandwidth"`
	MimeType       string   `json:"mimeType"`
	Codecs         string   `json:"codecs"`
	CodecID        int      `json:"codecid"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	FrameRate      string   `json:"frameRate"`
}

// URL returns whichever spelling of the base URL is set.
func (s *DashStream) URL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return s.BaseURLSnake
}

// Backups returns whichever spelling of the backup list is set.
func (s *DashStream) Backups() []string {
	if len(s.BackupURL) > 0 {
		return s.BackupURL
	}
	return s.BackupURLSnake
}

// Durl is one byte-range part of a monolithic manifest. Length is in milliseconds.
type Durl struct {
	Order     int      `json:"order"`
	Length    int64    `json:"length"`
	Size      int64    `json:"size"`
	URL       string   `json:"url"`
	BackupURL []string `json:"backup_url"`
}

// PlayURL fetches the playback manifest for one item.
func (c *Client) PlayURL(ctx context.Context, params PlayURLParams) (*PlayURL, error) {
	var data PlayURL
	if err := c.get(ctx, "/x/player/playurl", params.values(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
