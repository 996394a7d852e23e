// Package main is the entry point for dashgrab.
package main

import (
	"github.com/dashgrab/dashgrab/cmd"
	"github.com/dashgrab/dashgrab/config"
	"github.com/dashgrab/dashgrab/internal/cache"
	"github.com/dashgrab/dashgrab/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if removed, err := cache.CollectGarbage(); err == nil && removed > 0 {
			log.Debugf("removed %d expired listings", removed)
		}
	}()

	cmd.Execute()
}
