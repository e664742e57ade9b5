package badges

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGrade reads the grade reported by the AI service. It accepts a plain
// number ("80", "92.5"), a percentage ("100%") or a fraction of correct
// answers ("4/5"), and always returns a percentage.
func ParseGrade(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty grade")
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("bad grade %q: %w", raw, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("bad grade %q: %w", raw, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("bad grade %q: zero denominator", raw)
		}
		return n / d * 100, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("bad grade %q: %w", raw, err)
	}
	return v, nil
}
