package query

import (
	"net/url"
	"strings"
	"time"
)

// Param is one query pair. An empty Value drops the pair.
type Param struct {
	Key   string
	Value string
}

// BuildQueryURL appends the pairs, in order, as a single path segment the way
// EVDS expects: {base}/k=v&k=v.
func BuildQueryURL(baseURL string, params []Param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.Join(pairs, "&")
}

// BuildBulletinURL points at {base}/{YYYYMM}/{DDMMYYYY}.xml.
func BuildBulletinURL(baseURL string, date time.Time) string {
	return strings.TrimRight(baseURL, "/") + "/" +
		date.Format(MonthFolderLayout) + "/" +
		FormatDateForXMLPath(date) + ".xml"
}

func BuildSeriesInfoURL(baseURL, seriesCode string) string {
	return BuildQueryURL(strings.TrimRight(baseURL, "/")+"/serieList", []Param{
		{Key: "type", Value: "json"},
		{Key: "code", Value: seriesCode},
	})
}

// SanitizeSeries converts a series id to the field name used in EVDS rows.
func SanitizeSeries(id string) string {
	return strings.ReplaceAll(id, ".", "_")
}
