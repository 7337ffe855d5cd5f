package rate

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"ratesboard/internal/adapters"
	"ratesboard/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrFetchSuperseded = errors.New("exchange rates fetch superseded by a newer one")

type ExportScope string

const (
	ScopeAll      ExportScope = "all"
	ScopeFiltered ExportScope = "filtered"
)

// Service owns the loaded row set and derives table views from it.
type Service struct {
	source         adapters.RateSource
	cache          adapters.FilterCache
	notifier       adapters.Notifier
	metrics        adapters.Metrics
	perPageOptions []int
	// -----
	mu        sync.RWMutex
	rows      []domain.Rate
	version   uint64
	state     LoadState
	lastErr   error
	updatedAt time.Time
	// fetch bookkeeping: latest is the only seq allowed to apply its response,
	// applied is the seq shown in the table, and parked holds the newest
	// superseded response in case latest gets canceled.
	fetchSeq    uint64
	latest      uint64
	applied     uint64
	outstanding map[uint64]struct{}
	parked      *fetchResult
	settled     LoadState
}

// fetchResult is a completed fetch waiting to be applied to the table.
type fetchResult struct {
	seq    uint64
	rows   []domain.Rate
	err    error
	execID string
}

// Load fetches the rate set once and replaces the current rows.
// Only the newest outstanding fetch may apply its response; older ones return
// ErrFetchSuperseded. A canceled fetch applies nothing: the newest older fetch
// takes over, or the table settles on its last applied state.
// On failure the row set becomes empty and one error notification is emitted.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.latest = seq
	s.outstanding[seq] = struct{}{}
	s.state = StateLoading
	s.mu.Unlock()

	execID := uuid.NewString()
	logrus.Debugf("Fetching exchange rates; execID: %s", execID)

	started := time.Now()
	rows, err := s.source.FetchRates(ctx)
	s.metrics.ObserveFetch(time.Since(started), err)
	res := fetchResult{seq: seq, rows: rows, err: err, execID: execID}

	s.mu.Lock()
	delete(s.outstanding, seq)

	if ctxErr := ctx.Err(); ctxErr != nil {
		logrus.Infof("Dropping exchange rates response after cancellation; execID: %s", execID)
		if seq == s.latest {
			if fallback, ok := s.handOver(ctxErr); ok {
				_ = s.commit(fallback)
				return ctxErr
			}
		}
		s.mu.Unlock()
		return ctxErr
	}

	if seq != s.latest {
		if seq > s.applied && (s.parked == nil || s.parked.seq < seq) {
			s.parked = &res
		}
		s.mu.Unlock()
		logrus.Infof("Dropping superseded exchange rates response; execID: %s", execID)
		return ErrFetchSuperseded
	}
	return s.commit(res)
}

// handOver picks what the table shows after the newest fetch was canceled.
// It returns a parked response to apply, if one is newer than every outstanding
// fetch. Otherwise the newest outstanding fetch started after the applied one
// becomes the one allowed to apply, and with none left the last applied state
// is restored. Must hold s.mu.
func (s *Service) handOver(cause error) (fetchResult, bool) {
	var newest uint64
	for seq := range s.outstanding {
		if seq > s.applied {
			newest = max(newest, seq)
		}
	}

	if s.parked != nil && s.parked.seq > newest {
		res := *s.parked
		s.latest = res.seq
		return res, true
	}
	if newest != 0 {
		s.latest = newest
		return fetchResult{}, false
	}

	s.latest = 0
	s.state = s.settled
	if s.state == StateLoading {
		// nothing was ever applied and nothing is in flight
		s.state = StateError
		s.lastErr = cause
	}
	return fetchResult{}, false
}

// commit applies res to the table. Must hold s.mu; commit releases it.
func (s *Service) commit(res fetchResult) error {
	s.parked = nil
	s.applied = res.seq
	s.version++
	s.updatedAt = time.Now()
	if res.err != nil {
		s.rows = []domain.Rate{}
		s.state = StateError
		s.settled = StateError
		s.lastErr = res.err
		s.mu.Unlock()

		s.metrics.SetLoadedRows(0)
		logrus.WithError(res.err).Errorf("Failed to fetch exchange rates; execID: %s", res.execID)
		s.notifier.Error(res.err.Error())
		return res.err
	}

	s.rows = res.rows
	s.state = StateLoaded
	s.settled = StateLoaded
	s.lastErr = nil
	s.mu.Unlock()

	s.metrics.SetLoadedRows(len(res.rows))
	logrus.Infof("%d exchange rates loaded; execID: %s", len(res.rows), res.execID)
	return nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Rows:      s.rows,
		Version:   s.version,
		State:     s.state,
		UpdatedAt: s.updatedAt,
		Err:       s.lastErr,
	}
}

// Rows returns a copy of the loaded rows in fetch order.
func (s *Service) Rows() []domain.Rate {
	return slices.Clone(s.Snapshot().Rows)
}

// Query applies filter, sort and pagination to the current row set.
// The query must already be validated.
func (s *Service) Query(q Query) (View, error) {
	snap := s.Snapshot()

	sorted, err := Sort(s.filtered(snap, q.Filter), q.SortField, q.Descending())
	if err != nil {
		return View{}, err
	}
	page := Paginate(sorted, q.ResolvePage(), q.PerPage)
	q.Page = page.Number
	q.From = 0

	return View{
		Columns:        Columns(),
		Page:           page,
		Query:          q,
		Total:          len(snap.Rows),
		State:          snap.State,
		PerPageOptions: slices.Clone(s.perPageOptions),
		UpdatedAt:      snap.UpdatedAt,
	}, nil
}

// ExportRows returns the rows an export should contain, in fetch order.
func (s *Service) ExportRows(scope ExportScope, filter string) []domain.Rate {
	snap := s.Snapshot()
	if scope == ScopeFiltered {
		return slices.Clone(s.filtered(snap, filter))
	}
	return slices.Clone(snap.Rows)
}

func (s *Service) filtered(snap Snapshot, text string) []domain.Rate {
	if rows, ok := s.cache.Get(snap.Version, text); ok {
		return rows
	}
	rows := Filter(snap.Rows, text)
	s.cache.Set(snap.Version, text, rows)
	return rows
}

func NewService(source adapters.RateSource, cache adapters.FilterCache, notifier adapters.Notifier, metrics adapters.Metrics, perPageOptions []int) *Service {
	return &Service{
		source:         source,
		cache:          cache,
		notifier:       notifier,
		metrics:        metrics,
		perPageOptions: slices.Clone(perPageOptions),
		rows:           []domain.Rate{},
		state:          StateLoading,
		settled:        StateLoading,
		outstanding:    map[uint64]struct{}{},
	}
}
