package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/slipway/internal/deck"
	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/adapters/memory"
	"github.com/opskit/slipway/pkg/adapters/pagerduty"
	"github.com/opskit/slipway/pkg/domain"
)

// stubRows implements ports.RowStore in memory for handler tests.
type stubRows struct {
	records  []domain.RowRecord
	appended []string
	readErr  error
	writeErr error
}

func (s *stubRows) ReadAll(_ context.Context) ([]domain.RowRecord, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.records, nil
}

func (s *stubRows) Append(_ context.Context, subjectName string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.appended = append(s.appended, subjectName)
	return nil
}

func newTestHandler(t *testing.T, rows *stubRows, opts ...Option) http.Handler {
	t.Helper()
	d, err := wizard.NewDeck(deck.DefaultEntry, deck.Default())
	require.NoError(t, err)
	engine := wizard.NewEngine(d, nil, domain.LifecycleHooks{})
	return NewHandler(engine, rows, pagerduty.NewFixture(), memory.NewStore(), opts...)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestReadRows(t *testing.T) {
	rows := &stubRows{records: []domain.RowRecord{{"Api Name": "Existing"}}}
	handler := newTestHandler(t, rows)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rows", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env["success"])
	data := env["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Existing", data[0].(map[string]any)["Api Name"])
}

func TestReadRows_Failure(t *testing.T) {
	rows := &stubRows{readErr: errors.New("disk gone")}
	handler := newTestHandler(t, rows)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rows", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Failed to read spreadsheet", env["error"])
}

func TestAppendRow(t *testing.T) {
	rows := &stubRows{}
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := newTestHandler(t, rows, withClock(func() time.Time { return fixed }))

	body := bytes.NewBufferString(`{"serviceName":"My Service","exists":false}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rows", body))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "Row added successfully", env["message"])

	data := env["data"].(map[string]any)
	assert.Equal(t, "My Service", data["serviceName"])
	assert.Equal(t, false, data["exists"])
	assert.Equal(t, "2025-03-01T12:00:00Z", data["timestamp"])

	assert.Equal(t, []string{"My Service"}, rows.appended)
}

func TestAppendRow_Failure(t *testing.T) {
	rows := &stubRows{writeErr: errors.New("locked")}
	handler := newTestHandler(t, rows)

	body := bytes.NewBufferString(`{"serviceName":"x","exists":true}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rows", body))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Failed to write spreadsheet", env["error"])
}

func TestAppendRow_InvalidBody(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rows", bytes.NewBufferString("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListServices(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/services?query=staging", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	data := env["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "P2DTXQZ", data[0].(map[string]any)["id"])
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/rows", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
