package cmd

import (
	"fmt"

	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/style"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// closest returns the candidate with the smallest edit distance to name.
func closest(name string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	return lo.MinBy(candidates, func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	}), true
}

func errUnknown(kind, name string, candidates []string) error {
	suggestion, ok := closest(name, candidates)
	if !ok {
		return fmt.Errorf("unknown %s %s", kind, style.Fg(color.Red)(name))
	}

	return fmt.Errorf(
		"unknown %s %s, did you mean %s?",
		kind,
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(suggestion),
	)
}
