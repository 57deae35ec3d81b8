package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/database"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/rename"
)

// planBody is the body of the plan and rename endpoints
type planBody struct {
	Kind string `json:"kind"`
	rename.Edits
}

type planResponse struct {
	Flow      rename.Flow             `json:"flow"`
	Identity  rename.TitleIdentity    `json:"identity"`
	Plan      rename.Plan             `json:"plan"`
	Conflicts []rename.Conflict       `json:"conflicts"`
	Request   rename.RenameRequest    `json:"request"`
	Subtitles []rename.SubtitleChoice `json:"subtitles,omitempty"`
	Episodes  []rename.EpisodeChoice  `json:"episodes,omitempty"`
}

type renameResponse struct {
	SessionID string               `json:"session_id"`
	Request   rename.RenameRequest `json:"request"`
}

type additionsResponse struct {
	Results []bakus.Addition `json:"results"`
	Cached  bool             `json:"cached"`
}

// GetHealth reports liveness and whether a server login is stored
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	loggedIn := false
	if s.store != nil {
		if token, err := s.store.Token(); err == nil && token != "" {
			loggedIn = true
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"logged_in": loggedIn,
	})
}

// GetAdditions fetches the server list and refreshes the cache. When the
// server is unreachable the cached list is served instead, if there is one.
func (s *Server) GetAdditions(w http.ResponseWriter, r *http.Request) {
	additions, err := s.remote.Additions(r.Context())
	if err != nil {
		s.log.Warn("failed to fetch additions", logging.F("error", err.Error()))
		cached, cacheErr := s.cachedAdditions()
		if cacheErr != nil || len(cached) == 0 {
			writeRemoteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, additionsResponse{Results: cached, Cached: true})
		return
	}

	if s.store != nil {
		if err := s.store.ReplaceAdditions(additions); err != nil {
			s.log.Error("failed to cache additions", err)
		}
	}
	if additions == nil {
		additions = []bakus.Addition{}
	}
	writeJSON(w, http.StatusOK, additionsResponse{Results: additions})
}

func (s *Server) cachedAdditions() ([]bakus.Addition, error) {
	if s.store == nil {
		return nil, nil
	}
	cached, err := s.store.ListAdditions()
	if err != nil {
		return nil, err
	}
	out := make([]bakus.Addition, len(cached))
	for i, c := range cached {
		out[i] = c.Addition
	}
	return out, nil
}

// PostPlan previews the rename of one addition. Nothing is submitted.
func (s *Server) PostPlan(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.buildSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newPlanResponse(session))
}

// PostRename submits the rename of one addition. A failed submission is
// logged and reported with 502; the cached addition is kept so the caller
// can retry.
func (s *Server) PostRename(w http.ResponseWriter, r *http.Request) {
	session, addition, ok := s.buildSession(w, r)
	if !ok {
		return
	}

	if err := session.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "title_required", `no title could be guessed; send one in "title"`)
		return
	}

	plan := session.Plan()
	if conflicts := plan.Conflicts(); len(conflicts) > 0 {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"code":      "name_conflict",
			"message":   "several files would receive the same name",
			"conflicts": conflicts,
		})
		return
	}

	req := session.Request()
	record := database.RenameRecord{
		AdditionName: addition.Name,
		Flow:         session.Flow(),
		Request:      req,
		Status:       database.StatusSubmitted,
	}

	if err := s.remote.RenameAddition(r.Context(), req); err != nil {
		s.log.Error("rename failed", err,
			logging.F("addition", req.AdditionID),
			logging.F("files", len(req.Files)))
		record.Status = database.StatusFailed
		record.Error = err.Error()
		s.logRename(record)
		writeError(w, http.StatusBadGateway, "rename_failed", err.Error())
		return
	}

	id := s.logRename(record)
	if s.store != nil {
		if _, err := s.store.RemoveAddition(req.AdditionID); err != nil {
			s.log.Error("failed to drop renamed addition from cache", err)
		}
	}
	s.log.Info("rename submitted",
		logging.F("addition", req.AdditionID),
		logging.F("title", req.NewTitle),
		logging.F("files", len(req.Files)))

	writeJSON(w, http.StatusOK, renameResponse{SessionID: id, Request: req})
}

// GetHistory lists recent rename submissions, newest first
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	if s.store == nil {
		writeJSON(w, http.StatusOK, []historyItem{})
		return
	}
	records, err := s.store.RecentRenames(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history_failed", err.Error())
		return
	}

	items := make([]historyItem, len(records))
	for i, rec := range records {
		items[i] = newHistoryItem(rec)
	}
	writeJSON(w, http.StatusOK, items)
}

// buildSession resolves the addition, starts a session and applies the
// body's edits. On failure it has already written the response.
func (s *Server) buildSession(w http.ResponseWriter, r *http.Request) (*rename.Session, *bakus.Addition, bool) {
	var body planBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("invalid request body: %v", err))
		return nil, nil, false
	}

	flow, ok := rename.ParseFlow(body.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_kind", `kind must be "movie" or "tv"`)
		return nil, nil, false
	}

	id := chi.URLParam(r, "id")
	addition, err := s.remote.Addition(r.Context(), id)
	if err != nil {
		writeRemoteError(w, err)
		return nil, nil, false
	}
	if !addition.Completed() {
		writeError(w, http.StatusConflict, "not_completed", "addition is still downloading")
		return nil, nil, false
	}

	session := rename.NewSession(flow, addition.RenameInput(), s.cfg.Rename.SessionOptions())
	if err := session.Apply(body.Edits); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_edit", err.Error())
		return nil, nil, false
	}

	return session, addition, true
}

func (s *Server) logRename(rec database.RenameRecord) string {
	if s.store == nil {
		return ""
	}
	id, err := s.store.LogRename(rec)
	if err != nil {
		s.log.Error("failed to log rename", err)
	}
	return id
}

func newPlanResponse(session *rename.Session) planResponse {
	plan := session.Plan()
	resp := planResponse{
		Flow:      session.Flow(),
		Identity:  session.Identity(),
		Plan:      plan,
		Conflicts: plan.Conflicts(),
		Request:   session.Request(),
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []rename.Conflict{}
	}
	switch session.Flow() {
	case rename.FlowTV:
		resp.Episodes = session.Episodes()
	default:
		resp.Subtitles = session.Subtitles()
	}
	return resp
}

type historyItem struct {
	ID           string                `json:"id"`
	AdditionName string                `json:"addition_name"`
	Flow         rename.Flow           `json:"flow"`
	Status       database.RenameStatus `json:"status"`
	Error        string                `json:"error,omitempty"`
	CreatedAt    string                `json:"created_at"`
	Request      rename.RenameRequest  `json:"request"`
}

func newHistoryItem(rec database.RenameRecord) historyItem {
	return historyItem{
		ID:           rec.ID,
		AdditionName: rec.AdditionName,
		Flow:         rec.Flow,
		Status:       rec.Status,
		Error:        rec.Error,
		CreatedAt:    rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Request:      rec.Request,
	}
}

// writeRemoteError maps a server client error onto a local status code
func writeRemoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bakus.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, bakus.ErrNotLoggedIn), errors.Is(err, bakus.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "server_login_required", err.Error())
	default:
		writeError(w, http.StatusBadGateway, "server_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}
