package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ratesboard/internal/domain"
	"ratesboard/internal/notify"
	"ratesboard/internal/rate"
	"ratesboard/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockService) Query(q rate.Query) (rate.View, error) {
	args := m.Called(q)
	v, _ := args.Get(0).(rate.View)
	return v, args.Error(1)
}

func (m *MockService) ExportRows(scope rate.ExportScope, filter string) []domain.Rate {
	args := m.Called(scope, filter)
	rows, _ := args.Get(0).([]domain.Rate)
	return rows
}

func (m *MockService) Snapshot() rate.Snapshot {
	args := m.Called()
	s, _ := args.Get(0).(rate.Snapshot)
	return s
}

type MockExporter struct{ mock.Mock }

func (m *MockExporter) ServeCSV(w http.ResponseWriter, rows []domain.Rate) error {
	args := m.Called(w, rows)
	return args.Error(0)
}

func (m *MockExporter) ServeXLSX(w http.ResponseWriter, rows []domain.Rate) error {
	args := m.Called(w, rows)
	return args.Error(0)
}

type errorJSON struct {
	Error string `json:"error"`
}

type fixture struct {
	service  *MockService
	exporter *MockExporter
	channel  *notify.Channel
	handler  *Handler
	router   *chi.Mux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pages, err := web.NewPages()
	require.NoError(t, err)

	f := &fixture{
		service:  new(MockService),
		exporter: new(MockExporter),
		channel:  notify.NewChannel(notify.Options{Limit: 1}),
	}
	t.Cleanup(f.channel.Close)

	f.handler = NewRateHandler(f.service, rate.NewQueryValidator([]int{5, 10, 25, 50}, 10), f.exporter, f.channel, pages)

	r := chi.NewRouter()
	r.Get("/", f.handler.Index)
	r.Get("/api/v1/rates", f.handler.ListRates)
	r.Post("/api/v1/rates/refresh", f.handler.Refresh)
	r.Get("/api/v1/rates/export.csv", f.handler.ExportCSV)
	r.Get("/api/v1/rates/export.xlsx", f.handler.ExportXLSX)
	r.Get("/api/v1/notifications", f.handler.ListNotifications)
	r.Delete("/api/v1/notifications/{id}", f.handler.DismissNotification)
	r.Get("/ws/notifications", f.handler.NotificationsWS)
	f.router = r
	return f
}

func (f *fixture) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func rateOf(name, unit, value, typ string) domain.Rate {
	return domain.NewRate(name, unit, decimal.RequireFromString(value), typ)
}

func viewFor(q rate.Query, rows []domain.Rate) rate.View {
	page := rate.Paginate(rows, q.ResolvePage(), q.PerPage)
	q.Page = page.Number
	q.From = 0
	return rate.View{
		Columns:        rate.Columns(),
		Page:           page,
		Query:          q,
		Total:          len(rows),
		State:          rate.StateLoaded,
		PerPageOptions: []int{5, 10, 25, 50},
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

// --- ListRates ---

func TestHandler_ListRates_DefaultQuery(t *testing.T) {
	f := newFixture(t)
	want := rate.Query{Page: 1, PerPage: 10, SortField: "name", SortOrder: rate.SortAsc}
	rows := []domain.Rate{rateOf("Bitcoin", "BTC", "1", "crypto")}
	f.service.On("Query", want).Return(viewFor(want, rows), nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates")

	require.Equal(t, http.StatusOK, rec.Code)
	var res ListRatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "loaded", res.State)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "Bitcoin", res.Rows[0].Name)
	require.True(t, decimal.NewFromInt(1).Equal(res.Rows[0].Value))
	require.Equal(t, 1, res.Total)
	require.Equal(t, 1, res.Filtered)
	require.Len(t, res.Columns, 4)
	require.Equal(t, 50, res.Columns[0].WidthPercent)
	require.Nil(t, res.UpdatedAt)
	f.service.AssertExpectations(t)
}

func TestHandler_ListRates_ParsesParams(t *testing.T) {
	f := newFixture(t)
	want := rate.Query{Filter: "Bit", Page: 2, PerPage: rate.PerPageAll, SortField: "value", SortOrder: rate.SortDesc, From: 12}
	f.service.On("Query", want).Return(viewFor(want, nil), nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates?filter=Bit&page=2&per_page=ALL&sort=Value&order=DESC&from=12")

	require.Equal(t, http.StatusOK, rec.Code)
	f.service.AssertExpectations(t)
}

func TestHandler_ListRates_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{name: "page not a number", query: "page=x", wantMsg: rate.ErrInvalidPage.Error()},
		{name: "page zero", query: "page=0", wantMsg: rate.ErrInvalidPage.Error()},
		{name: "per_page not offered", query: "per_page=7", wantMsg: rate.ErrInvalidPerPage.Error()},
		{name: "per_page not a number", query: "per_page=many", wantMsg: rate.ErrInvalidPerPage.Error()},
		{name: "unknown sort", query: "sort=symbol", wantMsg: rate.ErrInvalidSortField.Error()},
		{name: "bad order", query: "order=up", wantMsg: rate.ErrInvalidSortOrder.Error()},
		{name: "negative from", query: "from=-3", wantMsg: rate.ErrInvalidFrom.Error()},
		{name: "from not a number", query: "from=top", wantMsg: rate.ErrInvalidFrom.Error()},
		{name: "filter too long", query: "filter=" + strings.Repeat("a", rate.MaxFilterLength+1), wantMsg: rate.ErrFilterTooLong.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodGet, "/api/v1/rates?"+tc.query)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tc.wantMsg, decodeError(t, rec))
			f.service.AssertNotCalled(t, "Query", mock.Anything)
		})
	}
}

func TestHandler_ListRates_ServiceError(t *testing.T) {
	f := newFixture(t)
	f.service.On("Query", mock.Anything).Return(rate.View{}, errors.New("boom")).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "ups, couldn't list rates this time", decodeError(t, rec))
}

// --- Index ---

func TestHandler_Index_RendersPage(t *testing.T) {
	f := newFixture(t)
	want := rate.Query{Page: 1, PerPage: 10, SortField: "name", SortOrder: rate.SortAsc}
	f.service.On("Query", want).Return(viewFor(want, []domain.Rate{rateOf("Bitcoin", "BTC", "1", "crypto")}), nil).Once()

	rec := f.do(http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "<td>Bitcoin</td>")
	require.Contains(t, rec.Body.String(), `data-testid="search"`)
}

func TestHandler_Index_InvalidQueryFallsBackToDefaults(t *testing.T) {
	f := newFixture(t)
	defaults := rate.Query{Page: 1, PerPage: 10, SortField: "name", SortOrder: rate.SortAsc}
	f.service.On("Query", defaults).Return(viewFor(defaults, nil), nil).Once()

	rec := f.do(http.MethodGet, "/?per_page=7")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), rate.ErrInvalidPerPage.Error())
	f.service.AssertExpectations(t)
}

// --- Refresh ---

func TestHandler_Refresh_Success(t *testing.T) {
	f := newFixture(t)
	rows := []domain.Rate{rateOf("Bitcoin", "BTC", "1", "crypto"), rateOf("Ether", "ETH", "27.5", "crypto")}
	f.service.On("Load", mock.Anything).Return(nil).Once()
	f.service.On("Snapshot").Return(rate.Snapshot{Rows: rows, State: rate.StateLoaded}).Once()

	rec := f.do(http.MethodPost, "/api/v1/rates/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	var res RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, RefreshResponse{Status: "loaded", Total: 2}, res)
}

func TestHandler_Refresh_UpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.service.On("Load", mock.Anything).Return(errors.New("unexpected status code: status code 503: down")).Once()

	rec := f.do(http.MethodPost, "/api/v1/rates/refresh")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "unexpected status code: status code 503: down", decodeError(t, rec))
	f.service.AssertNotCalled(t, "Snapshot")
}

func TestHandler_Refresh_Superseded(t *testing.T) {
	f := newFixture(t)
	f.service.On("Load", mock.Anything).Return(rate.ErrFetchSuperseded).Once()

	rec := f.do(http.MethodPost, "/api/v1/rates/refresh")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, rate.ErrFetchSuperseded.Error(), decodeError(t, rec))
}

// --- Export ---

func TestHandler_ExportCSV_DefaultScopeIsAll(t *testing.T) {
	f := newFixture(t)
	rows := []domain.Rate{rateOf("Bitcoin", "BTC", "1", "crypto")}
	f.service.On("ExportRows", rate.ScopeAll, "").Return(rows).Once()
	f.exporter.On("ServeCSV", mock.Anything, rows).
		Run(func(args mock.Arguments) {
			w := args.Get(0).(http.ResponseWriter)
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte("name,unit,value,type\nBitcoin,BTC,1,crypto\n"))
		}).
		Return(nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates/export.csv")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "name,unit,value,type\nBitcoin,BTC,1,crypto\n", rec.Body.String())
	f.service.AssertExpectations(t)
	f.exporter.AssertExpectations(t)
}

func TestHandler_ExportCSV_FilteredScope(t *testing.T) {
	f := newFixture(t)
	rows := []domain.Rate{rateOf("Euro", "€", "1.1", "fiat")}
	f.service.On("ExportRows", rate.ScopeFiltered, "eu").Return(rows).Once()
	f.exporter.On("ServeCSV", mock.Anything, rows).Return(nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates/export.csv?scope=filtered&filter=eu")

	require.Equal(t, http.StatusOK, rec.Code)
	f.exporter.AssertExpectations(t)
}

func TestHandler_ExportCSV_NothingToExport(t *testing.T) {
	f := newFixture(t)
	f.service.On("ExportRows", rate.ScopeAll, "").Return([]domain.Rate{}).Once()
	f.exporter.On("ServeCSV", mock.Anything, []domain.Rate{}).Return(domain.ErrNothingToExport).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates/export.csv")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Zero(t, rec.Body.Len())
}

func TestHandler_ExportCSV_InvalidScope(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/rates/export.csv?scope=page")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, errInvalidScope.Error(), decodeError(t, rec))
	f.service.AssertNotCalled(t, "ExportRows", mock.Anything, mock.Anything)
}

func TestHandler_ExportXLSX_Failure(t *testing.T) {
	f := newFixture(t)
	rows := []domain.Rate{rateOf("Gold", "XAU", "24.1", "commodity")}
	f.service.On("ExportRows", rate.ScopeAll, "").Return(rows).Once()
	f.exporter.On("ServeXLSX", mock.Anything, rows).Return(errors.New("workbook broke")).Once()

	rec := f.do(http.MethodGet, "/api/v1/rates/export.xlsx")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "ups, couldn't export rates this time", decodeError(t, rec))
}

// --- Notifications ---

func TestHandler_ListNotifications(t *testing.T) {
	f := newFixture(t)
	n := f.channel.Info("Exporting CSV...")
	f.channel.Error("queued")

	rec := f.do(http.MethodGet, "/api/v1/notifications")

	require.Equal(t, http.StatusOK, rec.Code)
	var res ListNotificationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Notifications, 1)
	require.Equal(t, n.ID, res.Notifications[0].ID)
	require.Equal(t, domain.SeverityInfo, res.Notifications[0].Severity)
}

func TestHandler_DismissNotification(t *testing.T) {
	f := newFixture(t)
	n := f.channel.Info("one")
	f.channel.Info("two")

	rec := f.do(http.MethodDelete, "/api/v1/notifications/"+n.ID.String())

	require.Equal(t, http.StatusNoContent, rec.Code)
	visible := f.channel.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, "two", visible[0].Message)
}

func TestHandler_DismissNotification_Errors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodDelete, "/api/v1/notifications/not-a-uuid")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid notification ID format", decodeError(t, rec))

	rec = f.do(http.MethodDelete, "/api/v1/notifications/"+uuid.NewString())
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, domain.ErrNotificationNotFound.Error(), decodeError(t, rec))
}

// --- Notifications websocket ---

type wsFrame struct {
	Type          string                `json:"type"`
	Notifications []domain.Notification `json:"notifications"`
	Notification  domain.Notification   `json:"notification"`
}

func dialWS(t *testing.T, f *fixture) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(f.router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestHandler_NotificationsWS_SnapshotThenEvents(t *testing.T) {
	f := newFixture(t)
	first := f.channel.Info("already visible")

	conn := dialWS(t, f)

	snap := readFrame(t, conn)
	require.Equal(t, "snapshot", snap.Type)
	require.Len(t, snap.Notifications, 1)
	require.Equal(t, first.ID, snap.Notifications[0].ID)

	f.channel.Error("next")
	require.True(t, f.channel.Dismiss(first.ID))

	ev := readFrame(t, conn)
	require.Equal(t, string(notify.EventDismissed), ev.Type)
	require.Equal(t, first.ID, ev.Notification.ID)

	ev = readFrame(t, conn)
	require.Equal(t, string(notify.EventShown), ev.Type)
	require.Equal(t, "next", ev.Notification.Message)
}

func TestHandler_NotificationsWS_DismissFrame(t *testing.T) {
	f := newFixture(t)
	n := f.channel.Success("loaded")

	conn := dialWS(t, f)
	_ = readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dismiss", "id": n.ID.String()}))

	ev := readFrame(t, conn)
	require.Equal(t, string(notify.EventDismissed), ev.Type)
	require.Equal(t, n.ID, ev.Notification.ID)
	require.Empty(t, f.channel.Visible())
}

func TestHandler_NotificationsWS_RejectsPlainHTTP(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/ws/notifications")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
