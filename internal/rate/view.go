package rate

import (
	"ratesboard/internal/domain"
	"time"
)

type LoadState string

const (
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateError   LoadState = "error"
)

// Snapshot is the row set as of one moment. Rows is shared and must not be modified.
type Snapshot struct {
	Rows      []domain.Rate
	Version   uint64
	State     LoadState
	UpdatedAt time.Time
	Err       error
}

// View is everything the table needs to render one request.
type View struct {
	Columns        []Column
	Page           Page
	Query          Query
	Total          int
	State          LoadState
	PerPageOptions []int
	UpdatedAt      time.Time
}

func (v View) Loading() bool { return v.State == StateLoading }

// Filtered is the number of rows that matched the filter.
func (v View) Filtered() int { return v.Page.Total }
