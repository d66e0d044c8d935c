package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
	"github.com/spektr-org/privlaw/helpers"
	"github.com/spektr-org/privlaw/schema"
	"github.com/spektr-org/privlaw/translator"
)

const defaultMaxBodyBytes = 1 << 20

type handler struct {
	table    *engine.Table
	schema   schema.Config
	sessions *sessionStore
	logger   *zap.Logger
	maxBody  int64
	engine   []engine.Option
}

// NewHandler routes the dashboard API over table. staticHandler serves "/".
func NewHandler(table *engine.Table, options Options, logger *zap.Logger, staticHandler http.Handler) (http.Handler, error) {
	if table == nil {
		return nil, fmt.Errorf("missing table")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := options.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	sch := options.Schema
	if len(sch.Columns) == 0 {
		sch = schema.Default()
	}
	h := &handler{
		table:    table,
		schema:   sch,
		sessions: newSessionStore(options.SessionTTL, options.MaxSessions),
		logger:   logger,
		maxBody:  maxBody,
		engine: []engine.Option{
			engine.WithLogger(logger),
			engine.WithVocabularies(sch.Subjects, sch.Reliefs),
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/meta", h.handleMeta)
	mux.HandleFunc("GET /api/view", h.handleView)
	mux.HandleFunc("POST /api/view", h.handleView)
	mux.HandleFunc("GET /api/records/{id}", h.handleRecord)
	mux.HandleFunc("GET /api/export", h.handleExport)
	mux.HandleFunc("POST /api/sessions", h.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/actions", h.handleSessionAction)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.handleDeleteSession)
	if staticHandler != nil {
		mux.Handle("GET /", staticHandler)
	}
	return mux, nil
}

func (h *handler) handleHealth(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusOK, HealthResponse{OK: true, Service: "privlaw.ui"})
}

func (h *handler) handleMeta(writer http.ResponseWriter, request *http.Request) {
	yearMin, yearMax := h.table.YearBounds()
	writeJSON(writer, http.StatusOK, MetaResponse{
		OK:            true,
		Subjects:      h.schema.Subjects.Labels(),
		Reliefs:       h.schema.Reliefs.Labels(),
		YearMin:       yearMin,
		YearMax:       yearMax,
		RangeMin:      engine.RangeMin,
		RangeMax:      engine.RangeMax,
		PageSizes:     append([]int(nil), engine.PageSizes...),
		Records:       h.table.Len(),
		HasReliefData: h.table.HasReliefData(),
		Report:        h.table.Report(),
	})
}

// handleView renders a stateless view from query parameters (GET) or a
// JSON body (POST). Responses carry an ETag over the table fingerprint and
// normalized state.
func (h *handler) handleView(writer http.ResponseWriter, request *http.Request) {
	var (
		state engine.ViewState
		err   error
	)
	if request.Method == http.MethodPost {
		var payload []byte
		payload, err = h.readBody(writer, request)
		if err == nil {
			state, err = translator.FromJSON(payload, engine.DefaultViewState())
		}
	} else {
		state, err = translator.FromQuery(request.URL.Query(), engine.DefaultViewState())
	}
	if err != nil {
		h.writeFailure(writer, err)
		return
	}

	tag, err := viewETag(h.table.Fingerprint(), state)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	writer.Header().Set("ETag", tag)
	if etagMatches(request.Header.Get("If-None-Match"), tag) {
		writer.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(writer, http.StatusOK, ViewResponse{OK: true, View: engine.Render(h.table, state, h.engine...)})
}

func (h *handler) handleRecord(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(request.PathValue("id"))
	if err != nil {
		writeError(writer, http.StatusBadRequest, "record id must be an integer")
		return
	}
	detail := engine.BuildDetail(h.table, id)
	if detail == nil {
		writeError(writer, http.StatusNotFound, fmt.Sprintf("record %d not found", id))
		return
	}
	writeJSON(writer, http.StatusOK, DetailResponse{OK: true, Detail: detail})
}

func (h *handler) handleExport(writer http.ResponseWriter, request *http.Request) {
	state, err := translator.FromQuery(request.URL.Query(), engine.DefaultViewState())
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	view := engine.Matching(h.table, state, h.engine...)
	filename := helpers.ExportFilename(state.YearStart, state.YearEnd)

	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writer.WriteHeader(http.StatusOK)
	if err := helpers.WriteCSV(writer, view); err != nil {
		// Headers are already sent.
		h.logger.Warn("export write failed", zap.String("file", filename), zap.Error(err))
		return
	}
	h.logger.Debug("export", zap.String("file", filename), zap.Int("rows", view.Len()))
}

// ============================================================================
// SESSIONS
// ============================================================================

func (h *handler) handleCreateSession(writer http.ResponseWriter, request *http.Request) {
	state := engine.DefaultViewState()
	payload, err := h.readBody(writer, request)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	if len(strings.TrimSpace(string(payload))) > 0 {
		state, err = translator.FromJSON(payload, state)
		if err != nil {
			h.writeFailure(writer, err)
			return
		}
	}
	id := h.sessions.Create(state)
	h.logger.Debug("session created", zap.String("session", id))
	writeJSON(writer, http.StatusCreated, SessionResponse{OK: true, ID: id, View: h.render(state)})
}

func (h *handler) handleGetSession(writer http.ResponseWriter, request *http.Request) {
	id := request.PathValue("id")
	state, err := h.sessions.Get(id)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	writeJSON(writer, http.StatusOK, SessionResponse{OK: true, ID: id, View: h.render(state)})
}

func (h *handler) handleSessionAction(writer http.ResponseWriter, request *http.Request) {
	id := request.PathValue("id")
	payload, err := h.readBody(writer, request)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	action, err := translator.ParseAction(payload)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	state, err := h.sessions.Update(id, action.Apply)
	if err != nil {
		h.writeFailure(writer, err)
		return
	}
	h.logger.Debug("session action", zap.String("session", id), zap.String("action", action.Action))
	writeJSON(writer, http.StatusOK, SessionResponse{OK: true, ID: id, View: h.render(state)})
}

func (h *handler) handleDeleteSession(writer http.ResponseWriter, request *http.Request) {
	id := request.PathValue("id")
	if err := h.sessions.Delete(id); err != nil {
		h.writeFailure(writer, err)
		return
	}
	writeJSON(writer, http.StatusOK, SessionResponse{OK: true, ID: id})
}

func (h *handler) render(state engine.ViewState) *engine.ViewModel {
	return engine.Render(h.table, state, h.engine...)
}

// ============================================================================
// HELPERS
// ============================================================================

func (h *handler) readBody(writer http.ResponseWriter, request *http.Request) ([]byte, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, h.maxBody)
	payload, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, errs.Wrap(fmt.Errorf("read request body: %w", err), errs.CategoryInvalidInput, "bad_body", "")
	}
	return payload, nil
}

func (h *handler) writeFailure(writer http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", errs.CodeOf(err)), zap.Error(err))
	}
	writeError(writer, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]any{
		"ok":    false,
		"error": strings.TrimSpace(message),
	})
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		http.Error(writer, `{"ok":false,"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write(append(encoded, '\n'))
}
