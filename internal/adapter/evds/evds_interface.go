package evds

import (
	"context"
	"time"

	"tcmb-client/internal/adapter/transport"
	"tcmb-client/internal/entity"
)

type EvdsClient interface {
	FetchSeries(ctx context.Context, req SeriesRequest) (*SeriesResponse, error)
	FetchSeriesInfo(ctx context.Context, seriesCode string) ([]SeriesMeta, error)
}

// Getter is the transport the adapter issues its requests through.
type Getter interface {
	Get(ctx context.Context, url string, r transport.Request) ([]byte, int, error)
}

// SeriesRequest selects one or more series over a date range. Zero-valued
// options are left out of the URL.
type SeriesRequest struct {
	Series      []string
	Start       time.Time
	End         time.Time
	Frequency   entity.Frequency
	Aggregation entity.Aggregation
	Formula     *entity.Formula
}
