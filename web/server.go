// ABOUTME: HTTP admin surface over the record store, page scanner, and syncer
// ABOUTME: Mutating routes pass the authorization policy before any store call
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ecommvert/siteadmin/auth"
	"github.com/ecommvert/siteadmin/pages"
	"github.com/ecommvert/siteadmin/settings"
	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
)

type Server struct {
	gateway  store.Gateway
	syncer   *syncer.Syncer
	settings *settings.Service
	policy   auth.AuthorizationPolicy
	pagesDir string
}

func NewServer(gateway store.Gateway, s *syncer.Syncer, svc *settings.Service, policy auth.AuthorizationPolicy, pagesDir string) *Server {
	return &Server{
		gateway:  gateway,
		syncer:   s,
		settings: svc,
		policy:   policy,
		pagesDir: pagesDir,
	}
}

// Handler builds the route table. Kept separate from Start so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/content", s.handleContent)
	mux.HandleFunc("/pages", s.handlePages)
	mux.HandleFunc("/settings", s.handleSettings)
	mux.HandleFunc("/sync/pull", s.handleSyncPull)
	mux.HandleFunc("/sync/push", s.handleSyncPush)
	mux.HandleFunc("/sync/replace", s.handleSyncReplace)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting admin server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// storeStatus maps gateway failures to 502: the remote store is an upstream
// dependency, not this server.
func storeStatus(err error) int {
	var remote *store.RemoteStoreError
	if errors.As(err, &remote) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// authorize runs the policy check. It must run before any gateway call so
// a rejected request never touches the store.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	if err := s.policy.Authorize(auth.CallerFromRequest(r)); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

type contentRequest struct {
	Table   string      `json:"table"`
	ID      string      `json:"id,omitempty"`
	IDs     []string    `json:"ids,omitempty"`
	Key     string      `json:"key,omitempty"`
	Mode    string      `json:"mode,omitempty"`
	Payload []store.Row `json:"payload,omitempty"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleContentList(w, r)
	case http.MethodPost:
		s.handleContentWrite(w, r)
	case http.MethodPut:
		s.handleContentPatch(w, r)
	case http.MethodDelete:
		s.handleContentDelete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleContentList(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if !store.ValidTable(table) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown table: %q", table))
		return
	}

	f := store.Filter{OrderBy: r.URL.Query().Get("order")}
	rows, err := s.gateway.Query(r.Context(), table, f)
	if err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	if rows == nil {
		rows = []store.Row{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleContentWrite(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !store.ValidTable(req.Table) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown table: %q", req.Table))
		return
	}
	if len(req.Payload) == 0 {
		writeError(w, http.StatusBadRequest, "payload required")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	mode := store.WriteUpsert
	if req.Mode == string(store.WriteInsert) {
		mode = store.WriteInsert
	}
	key := req.Key
	if key == "" {
		key = store.DefaultConflictKey(req.Table)
	}

	rows, err := s.gateway.Write(r.Context(), req.Table, req.Payload, mode, key)
	if err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleContentPatch(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !store.ValidTable(req.Table) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown table: %q", req.Table))
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if len(req.Payload) != 1 {
		writeError(w, http.StatusBadRequest, "payload must hold exactly one field set")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	key := req.Key
	if key == "" {
		key = store.DefaultConflictKey(req.Table)
	}

	rows, err := s.gateway.Patch(r.Context(), req.Table, req.ID, req.Payload[0], key)
	if err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !store.ValidTable(req.Table) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown table: %q", req.Table))
		return
	}

	key := req.Key
	if key == "" {
		key = store.DefaultConflictKey(req.Table)
	}

	var sel store.Selector
	switch {
	case req.ID == "*":
		sel = store.Selector{All: true, Key: key}
	case req.ID != "":
		sel = store.Selector{ID: req.ID}
	case len(req.IDs) > 0:
		sel = store.Selector{IDs: req.IDs}
	default:
		writeError(w, http.StatusBadRequest, "id, ids, or \"*\" required")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	rows, err := s.gateway.Erase(r.Context(), req.Table, sel)
	if err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	if rows == nil {
		rows = []store.Row{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries, err := pages.Scan(s.pagesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.settings.Get(r.Context()))
	case http.MethodPost:
		var patch settings.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if !s.authorize(w, r) {
			return
		}
		saved, err := s.settings.Save(r.Context(), patch)
		if err != nil {
			writeError(w, storeStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, saved)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorize(w, r) {
		return
	}
	if err := s.syncer.Pull(r.Context()); err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.syncer.CollectStatus())
}

func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorize(w, r) {
		return
	}
	if err := s.syncer.Push(r.Context()); err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.syncer.CollectStatus())
}

// replaceConfirm is the value the confirm parameter must carry: the tables
// the replace will wipe, spelled out by the caller.
var replaceConfirm = strings.Join([]string{store.TableCaseStudies, store.TableCategories}, ",")

func (s *Server) handleSyncReplace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.URL.Query().Get("confirm") != replaceConfirm {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("replace wipes remote tables; pass confirm=%s to proceed", replaceConfirm))
		return
	}
	if !s.authorize(w, r) {
		return
	}
	if err := s.syncer.Replace(r.Context()); err != nil {
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.syncer.CollectStatus())
}
