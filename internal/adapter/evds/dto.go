package evds

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DateField      = "Tarih"
	UnixTimeField  = "UNIXTIME"
	SerieCodeField = "SERIE_CODE"
)

type SeriesResponse struct {
	TotalCount int    `json:"totalCount"`
	Items      []Item `json:"items"`
}

// Item is one dated row keyed by sanitized series ids. Values arrive as
// numeric strings, numbers or null.
type Item map[string]any

func (i Item) Date() string {
	s, _ := i[DateField].(string)
	return s
}

// Float reports the numeric value of field. Missing, null, empty and
// non-numeric values report false.
func (i Item) Float(field string) (float64, bool) {
	raw, ok := i[field]
	if !ok || raw == nil {
		return 0, false
	}
	return toFloat(raw)
}

func toFloat(raw any) (float64, bool) {
	f, ok := parseNumber(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// SeriesMeta is one entry of the serieList endpoint.
type SeriesMeta struct {
	SerieCode    string `json:"SERIE_CODE"`
	SerieName    string `json:"SERIE_NAME"`
	SerieNameEng string `json:"SERIE_NAME_ENG"`
	FrequencyStr string `json:"FREQUENCY_STR"`
	DataSource   string `json:"DATASOURCE"`
	StartDate    string `json:"START_DATE"`
	EndDate      string `json:"END_DATE"`
}
