package extract

import (
	"strings"
	"time"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

const (
	dateHintConfidence  = 0.85
	dateRegexConfidence = 0.8
)

// Dates before this are discarded as extraction noise, as are dates in the
// future.
var dateWindowStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// ExtractDate resolves the transaction date. An ISO-8601 provider hint
// (trailing Z accepted) wins; otherwise the text is scanned with the known
// date patterns and the first match inside [2020-01-01, now] is returned.
func (p *PostProcessor) ExtractDate(fullText, providerHint string) FieldResult[time.Time] {
	if providerHint != "" {
		if parsed, err := parseISODate(providerHint); err == nil {
			return found(parsed, dateHintConfidence)
		}
	}

	now := time.Now()
	for _, dp := range patterns.DatePatterns {
		for _, match := range dp.Regex.FindAllString(fullText, -1) {
			parsed, err := time.Parse(dp.Layout, match)
			if err != nil {
				continue
			}
			if parsed.Before(dateWindowStart) || parsed.After(now) {
				continue
			}
			return found(parsed, dateRegexConfidence)
		}
	}

	return absent[time.Time]()
}

// parseISODate accepts RFC 3339 timestamps and bare ISO dates/datetimes.
func parseISODate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
