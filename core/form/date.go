package form

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// DateLayout is the layout of date inputs.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// FormatDate normalises a stored date/timestamp to the YYYY-MM-DD date input
// format. Timestamps carrying an offset are converted to UTC first.
// Null or unparseable values give "".
func FormatDate(s null.String) string {
	if !s.Valid || s.String == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t.UTC().Format(DateLayout)
		}
	}
	return ""
}
