package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Selector narrows a listing down to the items to download.
type Selector func(items []*media.InputItem) []*media.InputItem

// DefaultSelector keeps the first max items, or every item when max is not positive.
func DefaultSelector(max int) Selector {
	return func(items []*media.InputItem) []*media.InputItem {
		if max <= 0 {
			return items
		}
		return items[:util.Min(max, len(items))]
	}
}

// ParseSelector parses a comma separated list of selectors. Each one is
// "all", "first", "last", a 1-based index "N", an inclusive range "A-B" or a
// fuzzy title match "@text@". Selected items keep listing order and appear once.
func ParseSelector(description string) (Selector, error) {
	var parts []Selector
	for _, raw := range strings.Split(description, ",") {
		part, err := parseOne(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return func(items []*media.InputItem) []*media.InputItem {
		picked := make(map[*media.InputItem]bool)
		for _, part := range parts {
			for _, item := range part(items) {
				picked[item] = true
			}
		}
		return lo.Filter(items, func(item *media.InputItem, _ int) bool {
			return picked[item]
		})
	}, nil
}

func parseOne(description string) (Selector, error) {
	switch description {
	case "all":
		return func(items []*media.InputItem) []*media.InputItem { return items }, nil
	case "first":
		return func(items []*media.InputItem) []*media.InputItem { return items[:util.Min(1, len(items))] }, nil
	case "last":
		return func(items []*media.InputItem) []*media.InputItem { return items[util.Max(0, len(items)-1):] }, nil
	case "":
		return nil, fmt.Errorf("empty selector")
	}

	if len(description) > 2 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(items []*media.InputItem) []*media.InputItem {
			return lo.Filter(items, func(item *media.InputItem, _ int) bool {
				return fuzzy.MatchNormalizedFold(sub, item.Title)
			})
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.Atoi(from)
		end, err2 := strconv.Atoi(to)
		if err1 != nil || err2 != nil || start < 1 || end < start {
			return nil, fmt.Errorf("invalid range: %s", description)
		}
		return func(items []*media.InputItem) []*media.InputItem {
			lower := util.Min(start-1, len(items))
			upper := util.Min(end, len(items))
			return items[lower:upper]
		}, nil
	}

	if idx, err := strconv.Atoi(description); err == nil && idx >= 1 {
		return func(items []*media.InputItem) []*media.InputItem {
			if idx > len(items) {
				return nil
			}
			return items[idx-1 : idx]
		}, nil
	}

	return nil, fmt.Errorf("invalid selector: %s", description)
}
