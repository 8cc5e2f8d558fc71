// ABOUTME: Tests for the HTTP admin surface
// ABOUTME: Proves rejected requests never reach the gateway and errors map to status codes
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecommvert/siteadmin/auth"
	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/settings"
	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
)

type spyGateway struct {
	mu       sync.Mutex
	calls    int
	queryErr error
	writeErr error
	rows     []store.Row
}

func (g *spyGateway) bump() {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
}

func (g *spyGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *spyGateway) Query(_ context.Context, _ string, _ store.Filter) ([]store.Row, error) {
	g.bump()
	return g.rows, g.queryErr
}

func (g *spyGateway) Write(_ context.Context, _ string, rows []store.Row, _ store.WriteMode, _ string) ([]store.Row, error) {
	g.bump()
	if g.writeErr != nil {
		return nil, g.writeErr
	}
	return rows, nil
}

func (g *spyGateway) Patch(_ context.Context, _, _ string, fields store.Row, _ string) ([]store.Row, error) {
	g.bump()
	return []store.Row{fields}, nil
}

func (g *spyGateway) Erase(_ context.Context, _ string, _ store.Selector) ([]store.Row, error) {
	g.bump()
	return nil, nil
}

func newTestServer(t *testing.T, gw *spyGateway, policy auth.AuthorizationPolicy) *Server {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	s, err := syncer.New(gw, c)
	require.NoError(t, err)

	return NewServer(gw, s, settings.NewService(gw), policy, t.TempDir())
}

func doRequest(srv *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestContentListIsOpen(t *testing.T) {
	gw := &spyGateway{rows: []store.Row{{"id": "abc", "title": "Case"}}}
	srv := newTestServer(t, gw, auth.AnySessionPolicy{})

	rec := doRequest(srv, http.MethodGet, "/content?table=case_studies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []store.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Case", rows[0]["title"])
}

func TestContentListUnknownTableRejectedBeforeGateway(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodGet, "/content?table=users", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gw.callCount(), "validation failures must not reach the store")
}

func TestContentWriteRequiresAuthorization(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.AnySessionPolicy{})

	body := `{"table":"case_studies","payload":[{"id":"abc","title":"X"}]}`
	rec := doRequest(srv, http.MethodPost, "/content", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, gw.callCount(), "unauthorized requests must not reach the store")
}

func TestContentWriteWithSessionSucceeds(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.AnySessionPolicy{})

	body := `{"table":"case_studies","payload":[{"id":"abc","title":"X"}]}`
	rec := doRequest(srv, http.MethodPost, "/content", body, map[string]string{
		"Authorization": "Bearer session-token",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gw.callCount())
}

func TestContentWriteOwnerAllowList(t *testing.T) {
	gw := &spyGateway{}
	policy := auth.AllowListPolicy{Owners: []string{"owner@ecommvert.com"}}
	srv := newTestServer(t, gw, policy)

	body := `{"table":"categories","payload":[{"id":"abc","name":"Tools"}]}`

	rec := doRequest(srv, http.MethodPost, "/content", body, map[string]string{
		"X-Admin-Email": "intruder@example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/content", body, map[string]string{
		"X-Admin-Email": "Owner@Ecommvert.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code, "allow-list match is case-insensitive")
}

func TestContentWriteStoreFailureIs502(t *testing.T) {
	gw := &spyGateway{writeErr: &store.RemoteStoreError{Message: "connection refused"}}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	body := `{"table":"case_studies","payload":[{"id":"abc"}]}`
	rec := doRequest(srv, http.MethodPost, "/content", body, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestContentPatchValidation(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodPut, "/content", `{"table":"case_studies","payload":[{"title":"X"}]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing id must be rejected")
	assert.Zero(t, gw.callCount())
}

func TestContentDeleteWildcardMapsToAllSelector(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodDelete, "/content", `{"table":"case_studies","id":"*"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gw.callCount())
}

func TestContentDeleteRequiresSelector(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodDelete, "/content", `{"table":"case_studies"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gw.callCount())
}

func TestSettingsRoundtrip(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodGet, "/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, true, got["autosave"], "defaults served when nothing stored")

	rec = doRequest(srv, http.MethodPost, "/settings", `{"gtm_container":"GTM-NEW"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "GTM-NEW", got["gtm_container"])
}

func TestSyncReplaceRequiresConfirmation(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodPost, "/sync/replace", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gw.callCount(), "unconfirmed replace must not touch the store")

	rec = doRequest(srv, http.MethodPost, "/sync/replace?confirm=case_studies,categories", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncPullEndpoint(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.AnySessionPolicy{})

	rec := doRequest(srv, http.MethodPost, "/sync/pull", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/sync/pull", "", map[string]string{
		"Authorization": "Bearer tok",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPagesEndpoint(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodGet, "/pages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Empty(t, entries, "empty app dir yields no routes")
}

func TestMethodNotAllowed(t *testing.T) {
	gw := &spyGateway{}
	srv := newTestServer(t, gw, auth.OpenPolicy{})

	rec := doRequest(srv, http.MethodDelete, "/settings", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/sync/push", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
