package query

import (
	"fmt"
	"strings"
	"time"

	"tcmb-client/internal/entity"
)

const (
	// EVDSLayout is the day-month-year form used by EVDS parameters and the Tarih field.
	EVDSLayout = "02-01-2006"
	// XMLPathLayout names the daily bulletin file.
	XMLPathLayout = "02012006"
	// MonthFolderLayout names the monthly bulletin folder.
	MonthFolderLayout = "200601"
)

var inputLayouts = []string{
	"2006-01-02",
	EVDSLayout,
	"02.01.2006",
	time.RFC3339,
}

// ParseDate accepts ISO, EVDS, dotted and RFC3339 forms and returns the
// calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", entity.ErrInvalidDate, s)
}

// ParseEVDSDate parses the DD-MM-YYYY form only.
func ParseEVDSDate(s string) (time.Time, error) {
	t, err := time.Parse(EVDSLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entity.ErrInvalidDate, s)
	}
	return t, nil
}

// DateOnly drops the clock, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(EVDSLayout)
}

func FormatDateForXMLPath(t time.Time) string {
	return t.Format(XMLPathLayout)
}

// CheckDate rejects the zero time, which no bank publication can carry.
func CheckDate(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: date is not set", entity.ErrInvalidDate)
	}
	return nil
}

// FormatDateChecked is FormatDate that fails on the zero time.
func FormatDateChecked(t time.Time) (string, error) {
	if err := CheckDate(t); err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// FormatDateForXMLPathChecked is FormatDateForXMLPath that fails on the zero time.
func FormatDateForXMLPathChecked(t time.Time) (string, error) {
	if err := CheckDate(t); err != nil {
		return "", err
	}
	return FormatDateForXMLPath(t), nil
}

var istanbul = loadIstanbul()

func loadIstanbul() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}

// Today is the current calendar date in Türkiye, where bulletins are dated.
func Today() time.Time {
	return DateOnly(time.Now().In(istanbul))
}
