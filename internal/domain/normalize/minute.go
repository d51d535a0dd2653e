package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Stoppage-time extensions are folded into the fractional part so
// "45+2" sorts between 45 and 46.
const stoppageDivisor = 100

// minuteFields are the known provider aliases for the event minute,
// checked in order.
var minuteFields = []string{"minute", "time", "min", "elapsed", "event_minute", "clock"}

// ParseMinute converts a provider minute value into an effective minute
// and its display text. Stoppage time ("45+2") becomes base + ext/100.
// Returns ok=false when the value does not parse to a finite,
// non-negative minute.
func ParseMinute(v any) (float64, string, bool) {
	switch m := v.(type) {
	case float64:
		return minuteFromNumber(m)
	case int:
		return minuteFromNumber(float64(m))
	case int64:
		return minuteFromNumber(float64(m))
	case string:
		return minuteFromString(m)
	default:
		return 0, "", false
	}
}

func minuteFromNumber(m float64) (float64, string, bool) {
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return 0, "", false
	}
	base := math.Floor(m)
	text := strconv.Itoa(int(base))
	// A fractional part means the value was already stoppage-encoded.
	if ext := math.Round((m - base) * stoppageDivisor); ext > 0 {
		text += "+" + strconv.Itoa(int(ext))
	}
	return m, text, true
}

func minuteFromString(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "'")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}

	// "45+2" style stoppage time.
	if basePart, extPart, found := strings.Cut(s, "+"); found {
		base, err := strconv.Atoi(strings.TrimSpace(basePart))
		if err != nil || base < 0 {
			return 0, "", false
		}
		ext, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(extPart), "'"))
		if err != nil || ext < 0 {
			return 0, "", false
		}
		text := strconv.Itoa(base) + "+" + strconv.Itoa(ext)
		return float64(base) + float64(ext)/stoppageDivisor, text, true
	}

	// "45:30" match-clock form; the seconds part is discarded.
	if clockPart, _, found := strings.Cut(s, ":"); found {
		s = strings.TrimSpace(clockPart)
	}

	m, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", false
	}
	return minuteFromNumber(m)
}

// ExtractMinute scans the known minute aliases on a record and returns
// the first value that parses.
func ExtractMinute(raw map[string]any) (float64, string, bool) {
	for _, field := range minuteFields {
		v, present := raw[field]
		if !present {
			continue
		}
		if minute, text, ok := ParseMinute(v); ok {
			return minute, text, true
		}
	}
	return 0, "", false
}
