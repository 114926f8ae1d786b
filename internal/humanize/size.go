// Package humanize formats and parses byte sizes using decimal (base-1000) units.
package humanize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// HumanSize renders n with one decimal place in the largest unit below 1000,
// eliding a trailing ".0". Zero renders as "0B"; negative values keep their sign.
// A value that rounds up to 1000 in one unit is carried into the next.
func HumanSize(n int64) string {
	if n == 0 {
		return "0B"
	}
	value := math.Abs(float64(n))
	idx := 0
	for value >= 1000 && idx < len(sizeUnits)-1 {
		value /= 1000
		idx++
	}
	formatted := strconv.FormatFloat(value, 'f', 1, 64)
	if formatted == "1000.0" && idx < len(sizeUnits)-1 {
		value /= 1000
		idx++
		formatted = strconv.FormatFloat(value, 'f', 1, 64)
	}
	formatted = strings.TrimSuffix(formatted, ".0") + sizeUnits[idx]
	if n < 0 {
		return "-" + formatted
	}
	return formatted
}

// ParseSize converts a human-readable decimal size such as "1.5kB" or
// "10 GB" back into bytes.
func ParseSize(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty size")
	}
	size, err := units.FromHumanSize(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", text, err)
	}
	return size, nil
}
