package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two "major.minor.patch" versions, returning 1, -1 or 0.
// A leading "v" and any pre-release suffix after "-" are ignored. Missing parts count as zero.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}

func parse(s string) ([3]int, error) {
	var v [3]int

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) > len(v) {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v[i] = n
	}

	return v, nil
}
