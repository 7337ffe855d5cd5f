package adapters

import (
	"context"
	"ratesboard/internal/domain"
	"time"
)

type RateSource interface {
	FetchRates(ctx context.Context) ([]domain.Rate, error)
}

// FilterCache memoizes filtered row sets. Entries are keyed by row-set
// version so a replaced row set never serves stale results.
type FilterCache interface {
	Get(version uint64, filter string) ([]domain.Rate, bool)
	Set(version uint64, filter string, rows []domain.Rate)
}

type Notifier interface {
	Info(message string) domain.Notification
	Success(message string) domain.Notification
	Error(message string) domain.Notification
}

type Metrics interface {
	ObserveFetch(duration time.Duration, err error)
	SetLoadedRows(n int)
	IncExport(format string)
	IncNotification(severity domain.Severity)
}
