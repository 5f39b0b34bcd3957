package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/dbtest"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteback/internal/server/services"
	"github.com/dmitrijs2005/siteback/internal/server/session"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	db       *sql.DB
	sessions *session.MemoryStore
	accounts *services.AccountService
	server   *HTTPServer
	handler  http.Handler
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, opts, logging.Discard())
}

func newTestServerWithLogger(t *testing.T, opts Options, l logging.Logger) *testServer {
	t.Helper()

	db := dbtest.NewSQLite(t)
	m := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	store := session.NewMemoryStore(0)

	as := services.NewAccountService(db, m, store, l)
	rs := services.NewReviewService(db, m, l)
	cs := services.NewCallbackService(db, m, l)

	srv := NewHTTPServer("127.0.0.1:0", l, as, rs, cs, NewMetrics(store), opts)

	return &testServer{db: db, sessions: store, accounts: as, server: srv, handler: srv.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// register signs up a user and returns its session cookie.
func (ts *testServer) register(t *testing.T, name, email, pass string) *http.Cookie {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/register", map[string]string{"FIO": name, "email": email, "pass": pass}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sidCookie(t, rec)
}

// admin seeds an admin account and logs it in.
func (ts *testServer) admin(t *testing.T) *http.Cookie {
	t.Helper()
	_, _, err := ts.accounts.SeedAdmin(context.Background(), "admin@admin", "admin-pass", "")
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/api/login", map[string]string{"login": "admin@admin", "pass": "admin-pass"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sidCookie(t, rec)
}

func sidCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookie)
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decodeBody(t, rec)["error"].(string)
	return code
}
