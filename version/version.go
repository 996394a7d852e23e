// Package version checks for newer releases and compares version strings.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/network"
	"github.com/dashgrab/dashgrab/util"
	"github.com/dashgrab/dashgrab/where"
	"github.com/metafates/gache"
)

// ReleasesURL points at the latest release endpoint. Tests replace it.
var ReleasesURL = "https://api.github.com/repos/dashgrab/dashgrab/releases/latest"

func cacher() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Latest returns the newest released version without the leading "v".
// Results are cached for two days.
func Latest(ctx context.Context) (string, error) {
	c := cacher()
	if ver, expired, err := c.Get(); err == nil && !expired && ver != "" {
		return ver, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.App+"/"+constant.Version)

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver := strings.TrimPrefix(release.TagName, "v")
	_ = c.Set(ver)
	return ver, nil
}
