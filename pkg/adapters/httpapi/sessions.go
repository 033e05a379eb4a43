package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/domain"
)

// sessionView is the session payload returned by every navigation endpoint.
type sessionView struct {
	SessionID string            `json:"session_id"`
	State     *domain.State     `json:"state"`
	View      *wizard.View      `json:"view"`
	Services  []domain.Service  `json:"services,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (s *Server) renderSession(w http.ResponseWriter, r *http.Request, state *domain.State) {
	view, err := s.engine.Render(state)
	if err != nil {
		if errors.Is(err, domain.ErrSlideNotFound) {
			// Halted session: report the terminal condition, take no
			// further transitions.
			s.respondError(w, http.StatusConflict, "Slide not found: "+state.CurrentSlide)
			return
		}
		s.respondError(w, http.StatusInternalServerError, "Failed to render session")
		return
	}

	payload := sessionView{SessionID: state.SessionID, State: state, View: view}
	if state.Phase == domain.PhaseServiceSelection {
		// The overlay needs the service list; fetch it server-side so the
		// front end renders in one round trip.
		services, err := s.directory.FetchServices(r.Context(), "")
		if s.hooks.OnLookup != nil {
			s.hooks.OnLookup(r.Context(), &domain.LookupEvent{Results: len(services), IsError: err != nil})
		}
		if err != nil {
			s.logger.Error("failed to fetch services for overlay", "err", err)
			s.respondError(w, http.StatusBadGateway, "Failed to fetch services from directory")
			return
		}
		payload.Services = services
	}
	if state.Completed() {
		payload.Data = state.Data
	}
	s.respond(w, http.StatusOK, envelope{Success: true, Data: payload})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*domain.State, bool) {
	id := chi.URLParam(r, "sessionID")
	state, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.respondError(w, http.StatusNotFound, "Session not found")
		} else {
			s.logger.Error("failed to load session", "session", id, "err", err)
			s.respondError(w, http.StatusInternalServerError, "Failed to load session")
		}
		return nil, false
	}
	return state, true
}

func (s *Server) saveAndRender(w http.ResponseWriter, r *http.Request, state *domain.State) {
	if err := s.sessions.Save(r.Context(), state.SessionID, state); err != nil {
		s.logger.Error("failed to save session", "session", state.SessionID, "err", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	s.renderSession(w, r, state)
}

// handleCreateSession serves POST /api/sessions.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EntrySlide string `json:"entry_slide"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	state, err := s.engine.NewSession(newSessionID(), body.EntrySlide)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Unknown entry slide: "+body.EntrySlide)
		return
	}
	s.saveAndRender(w, r, state)
}

// handleGetSession serves GET /api/sessions/{sessionID}.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.renderSession(w, r, state)
}

// handleDeleteSession serves DELETE /api/sessions/{sessionID}.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete session", "session", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	s.respond(w, http.StatusOK, envelope{Success: true, Message: "Session deleted"})
}

// handleSelect serves POST /api/sessions/{sessionID}/select.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	next, err := s.engine.Select(r.Context(), state, body.Value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOption):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrWrongPhase):
			s.respondError(w, http.StatusConflict, err.Error())
		default:
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.saveAndRender(w, r, next)
}

// handleBack serves POST /api/sessions/{sessionID}/back.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.saveAndRender(w, r, s.engine.GoBack(r.Context(), state))
}

// handleSubmitName serves POST /api/sessions/{sessionID}/name. The submit
// resolves the overlay and performs the spreadsheet append.
func (s *Server) handleSubmitName(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var body struct {
		ServiceName string `json:"serviceName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	next, req, err := s.engine.SubmitServiceName(r.Context(), state, body.ServiceName)
	if err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.completeUpdate(w, r, next, req)
}

// handleChooseService serves POST /api/sessions/{sessionID}/choose.
func (s *Server) handleChooseService(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var body struct {
		ServiceID string `json:"serviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	services, err := s.directory.FetchServices(r.Context(), "")
	if s.hooks.OnLookup != nil {
		s.hooks.OnLookup(r.Context(), &domain.LookupEvent{Results: len(services), IsError: err != nil})
	}
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "Failed to fetch services from directory")
		return
	}

	var picked *domain.Service
	for i := range services {
		if services[i].ID == body.ServiceID {
			picked = &services[i]
			break
		}
	}
	if picked == nil {
		s.respondError(w, http.StatusBadRequest, "Unknown service: "+body.ServiceID)
		return
	}

	next, req, err := s.engine.ChooseService(r.Context(), state, *picked)
	if err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.completeUpdate(w, r, next, req)
}

// handleCancel serves POST /api/sessions/{sessionID}/cancel.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	next, err := s.engine.Cancel(r.Context(), state)
	if err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.saveAndRender(w, r, next)
}

// completeUpdate appends the emitted row, then saves and renders the session.
// The append runs after the navigation state is final, so an append failure
// leaves position and history intact.
func (s *Server) completeUpdate(w http.ResponseWriter, r *http.Request, state *domain.State, req *domain.UpdateRequest) {
	err := s.rows.Append(r.Context(), req.ServiceName)
	if s.hooks.OnRowAppend != nil {
		s.hooks.OnRowAppend(r.Context(), &domain.AppendEvent{SubjectName: req.ServiceName, IsError: err != nil})
	}
	if err != nil {
		s.logger.Error("failed to append row", "err", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to write spreadsheet")
		return
	}
	s.saveAndRender(w, r, state)
}
