// Package query parses common shapes out of URL query parameters.
package query

import (
	"strconv"
)

// Int parses a single query value as an int. It returns (0, false) for an
// empty or malformed value so callers can distinguish "absent" from zero.
func Int(val string) (int, bool) {
	if val == "" {
		return 0, false
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}
