package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, handler http.Handler) (string, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/sessions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data := env["data"].(map[string]any)
	id := data["session_id"].(string)
	require.NotEmpty(t, id)
	return id, data
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", path, bytes.NewBufferString(body)))
	return rec
}

func sessionState(t *testing.T, data map[string]any) map[string]any {
	t.Helper()
	state, ok := data["state"].(map[string]any)
	require.True(t, ok, "session payload must carry state")
	return state
}

func TestSessionLifecycle(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})
	id, data := createSession(t, handler)

	state := sessionState(t, data)
	assert.Equal(t, "dynatraceOnboarding", state["current_slide"])
	assert.Equal(t, "slide", state["phase"])

	// Navigate: "No" on the entry slide.
	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	state = sessionState(t, data)
	assert.Equal(t, "technicalServiceCheck", state["current_slide"])

	// Back navigation.
	rec = postJSON(t, handler, "/api/sessions/"+id+"/back", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	state = sessionState(t, data)
	assert.Equal(t, "dynatraceOnboarding", state["current_slide"])

	// Completion: "Yes" ends the wizard and returns the data map.
	rec = postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"yes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	state = sessionState(t, data)
	assert.Equal(t, "completed", state["phase"])
	responses := data["data"].(map[string]any)
	assert.Equal(t, "yes", responses["dynatraceOnboarding_response"])
	assert.Contains(t, responses, "dynatraceOnboarding_response")
}

func TestSession_ServiceNameFlow(t *testing.T) {
	rows := &stubRows{}
	handler := newTestHandler(t, rows)
	id, _ := createSession(t, handler)

	// No -> No opens the service-name prompt.
	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "awaiting_service_name", sessionState(t, data)["phase"])

	// Empty submit records a blank row and returns to the slide.
	rec = postJSON(t, handler, "/api/sessions/"+id+"/name", `{"serviceName":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	state := sessionState(t, data)
	assert.Equal(t, "slide", state["phase"])
	assert.Equal(t, "technicalServiceCheck", state["current_slide"])
	assert.Equal(t, []string{""}, rows.appended)
}

func TestSession_ServiceSelectionFlow(t *testing.T) {
	rows := &stubRows{}
	handler := newTestHandler(t, rows)
	id, _ := createSession(t, handler)

	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"yes"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// The overlay response carries the service list.
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "awaiting_service_selection", sessionState(t, data)["phase"])
	services := data["services"].([]any)
	require.Len(t, services, 4)

	// Choosing appends the picked service's name.
	rec = postJSON(t, handler, "/api/sessions/"+id+"/choose", `{"serviceId":"P2DTXQZ"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Dynatrace Staging Service"}, rows.appended)

	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "slide", sessionState(t, data)["phase"])
}

func TestSession_CancelSelectionGoesBack(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})
	id, _ := createSession(t, handler)

	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"yes"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler, "/api/sessions/"+id+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	state := sessionState(t, data)
	assert.Equal(t, "slide", state["phase"])
	assert.Equal(t, "technicalServiceCheck", state["current_slide"],
		"cancelling the selection pops back to the slide before the lookup")
}

func TestSession_SelectUnknownOption(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})
	id, _ := createSession(t, handler)

	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"perhaps"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_NotFound(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := postJSON(t, handler, "/api/sessions/nope/select", `{"value":"yes"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Session not found", env["error"])
}

func TestSession_Delete(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})
	id, _ := createSession(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/sessions/"+id+"/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/sessions/"+id+"/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_CreateWithEntrySlide(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := postJSON(t, handler, "/api/sessions", `{"entry_slide":"onboardingSteps"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "onboardingSteps", sessionState(t, data)["current_slide"])
}

func TestSession_CreateWithUnknownEntrySlide(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})

	rec := postJSON(t, handler, "/api/sessions", `{"entry_slide":"ghost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_AppendFailureKeepsNavigationState(t *testing.T) {
	rows := &stubRows{}
	handler := newTestHandler(t, rows)
	id, _ := createSession(t, handler)

	rec := postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, handler, "/api/sessions/"+id+"/select", `{"value":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rows.writeErr = assert.AnError
	rec = postJSON(t, handler, "/api/sessions/"+id+"/name", `{"serviceName":"Broken"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// The stored session still shows the overlay: the failed append did not
	// half-apply the exit transition.
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, httptest.NewRequest("GET", "/api/sessions/"+id+"/", nil))
	require.Equal(t, http.StatusOK, getRec.Code)
	data := decodeEnvelope(t, getRec)["data"].(map[string]any)
	assert.Equal(t, "awaiting_service_name", sessionState(t, data)["phase"])
}

func TestSession_RawStatePayload(t *testing.T) {
	handler := newTestHandler(t, &stubRows{})
	_, data := createSession(t, handler)

	raw, err := json.Marshal(data["state"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"current_slide":"dynatraceOnboarding"`)
}
