package output

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/media"
	"github.com/samber/lo"
)

// MPVBinary is the player executable. Tests replace it.
var MPVBinary = "mpv"

// MPV streams the batch in mpv, one playlist entry per item. Segmented audio is
// attached to its video with a per-file --audio-file option.
type MPV struct{}

func (MPV) Name() string { return "mpv" }

func (MPV) Description() string {
	return "Play the batch in mpv without downloading it. The referer and user agent are passed along."
}

func (MPV) Run(_ context.Context, b *media.Batch, opts Options) error {
	bin, err := exec.LookPath(MPVBinary)
	if err != nil {
		return fmt.Errorf("mpv not found: %w", err)
	}

	args, err := mpvArgs(b)
	if err != nil {
		return err
	}

	cmd := exec.Command(bin, args...)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	log.WithField("pid", cmd.Process.Pid).Info("mpv started")
	_, _ = fmt.Fprintf(opts.Out, "playing %d items in mpv\n", len(b.Items))
	return cmd.Process.Release()
}

func mpvArgs(b *media.Batch) ([]string, error) {
	args := []string{
		"--force-window=yes",
		"--referrer=" + constant.Referer,
		"--user-agent=" + constant.UserAgent,
	}

	entries := 0
	for _, item := range b.Items {
		audio, hasAudio := lo.Find(item.Fragments, func(f media.Fragment) bool {
			return f.Extension == media.ExtAudio
		})

		for _, f := range item.Fragments {
			if f.Extension == media.ExtAudio && !isAudioOnly(item) {
				continue
			}

			target, err := mediaTarget(f.URL)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Title, err)
			}

			args = append(args, "--{", "--force-media-title="+mediaTitle(f.Title))
			if hasAudio && f.Extension != media.ExtAudio {
				audioTarget, err := mediaTarget(audio.URL)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", audio.Title, err)
				}
				args = append(args, "--audio-file="+audioTarget)
			}
			args = append(args, target, "--}")
			entries++
		}
	}

	if entries == 0 {
		return nil, errors.New("nothing to play")
	}

	return args, nil
}

func isAudioOnly(item *media.ResolvedMedia) bool {
	return lo.EveryBy(item.Fragments, func(f media.Fragment) bool {
		return f.Extension == media.ExtAudio
	})
}

// mediaTarget rejects anything mpv could read as a flag or a local path.
func mediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	switch {
	case l == "":
		return "", errors.New("empty url")
	case strings.ContainsAny(l, "\x00\n\r"):
		return "", errors.New("control characters in url")
	case strings.HasPrefix(l, "-"):
		return "", errors.New("url must not start with '-'")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func mediaTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
