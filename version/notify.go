package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/style"
	"github.com/spf13/viper"
)

// Notify writes a notice to w when a newer release than the running one exists.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, err := Latest(ctx)
	if err != nil {
		log.Debugf("version check failed: %s", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
