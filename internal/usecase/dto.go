package usecase

// HistoryRequest carries the raw query parameters of a range lookup.
// Empty option fields leave the EVDS defaults in place.
type HistoryRequest struct {
	Currency    string
	Start       string
	End         string
	IncludeBoth bool
	Frequency   string
	Aggregation string
	Formula     string
}
