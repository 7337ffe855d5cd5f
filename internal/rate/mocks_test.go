package rate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ratesboard/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) FetchRates(ctx context.Context) ([]domain.Rate, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Rate)
	return rows, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Info(message string) domain.Notification {
	m.Called(message)
	return domain.Notification{ID: uuid.New(), Severity: domain.SeverityInfo, Message: message}
}

func (m *MockNotifier) Success(message string) domain.Notification {
	m.Called(message)
	return domain.Notification{ID: uuid.New(), Severity: domain.SeveritySuccess, Message: message}
}

func (m *MockNotifier) Error(message string) domain.Notification {
	m.Called(message)
	return domain.Notification{ID: uuid.New(), Severity: domain.SeverityError, Message: message}
}

type MockLoader struct{ mock.Mock }

func (m *MockLoader) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Fakes ---

type mapCache struct {
	mu   sync.Mutex
	data map[string][]domain.Rate
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]domain.Rate{}} }

func (c *mapCache) key(version uint64, filter string) string {
	return fmt.Sprintf("%d:%s", version, strings.ToLower(filter))
}

func (c *mapCache) Get(version uint64, filter string) ([]domain.Rate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.data[c.key(version, filter)]
	if ok {
		c.hits++
	}
	return rows, ok
}

func (c *mapCache) Set(version uint64, filter string, rows []domain.Rate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[c.key(version, filter)] = rows
}

type nopMetrics struct{}

func (nopMetrics) ObserveFetch(time.Duration, error) {}
func (nopMetrics) SetLoadedRows(int)                 {}
func (nopMetrics) IncExport(string)                  {}
func (nopMetrics) IncNotification(domain.Severity)   {}

func rateOf(name, unit, value, typ string) domain.Rate {
	return domain.NewRate(name, unit, decimal.RequireFromString(value), typ)
}

func sampleRates() []domain.Rate {
	return []domain.Rate{
		rateOf("Bitcoin", "BTC", "1", "crypto"),
		rateOf("Ether", "ETH", "27.5", "crypto"),
		rateOf("US Dollar", "$", "63250.125", "fiat"),
		rateOf("Euro", "€", "58120.4", "fiat"),
		rateOf("Bitcoin Cash", "BCH", "180.2", "crypto"),
		rateOf("Gold", "XAU", "24.1", "commodity"),
	}
}

func names(rows []domain.Rate) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}
