package rest

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/siteback/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SetsSessionCookie(t *testing.T) {
	ts := newTestServer(t, Options{})

	rec := ts.do(t, http.MethodPost, "/api/register", map[string]string{"FIO": "Ann", "email": "ann@example.com", "pass": "pw"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])

	c := sidCookie(t, rec)
	assert.Len(t, c.Value, 48)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.Secure)

	me := ts.do(t, http.MethodGet, "/api/me", nil, c)
	require.Equal(t, http.StatusOK, me.Code)
	user := decodeBody(t, me)["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password_hash")
}

func TestRegister_LogsOnce(t *testing.T) {
	var buf bytes.Buffer
	ts := newTestServerWithLogger(t, Options{}, logging.NewJSON(&buf, "info"))

	ts.register(t, "Ann", "ann@example.com", "pw")

	registered := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"msg":"account registered"`) {
			registered++
		}
	}
	assert.Equal(t, 1, registered, buf.String())
	assert.NotContains(t, buf.String(), `"msg":"Registered"`)
}

func TestRegister_SecureCookieOption(t *testing.T) {
	ts := newTestServer(t, Options{CookieSecure: true})

	c := ts.register(t, "Ann", "ann@example.com", "pw")
	assert.True(t, c.Secure)
}

func TestRegister_Errors(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.register(t, "First", "X@Y.com", "pw")

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"same email other case", map[string]string{"FIO": "Second", "email": "x@y.com", "pass": "pw"}, http.StatusConflict, "email_exists"},
		{"missing name", map[string]string{"email": "new@y.com", "pass": "pw"}, http.StatusBadRequest, "missing_fields"},
		{"missing pass", map[string]string{"FIO": "N", "email": "new@y.com"}, http.StatusBadRequest, "missing_fields"},
		{"empty body", nil, http.StatusBadRequest, "missing_fields"},
		{"broken json", `{"FIO":`, http.StatusBadRequest, "invalid_body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/register", tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, Options{})
	first := ts.register(t, "Ann", "ann@example.com", "secret")

	t.Run("ok issues a new cookie", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/login", map[string]string{"login": "Ann@Example.com", "pass": "secret"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		c := sidCookie(t, rec)
		assert.NotEqual(t, first.Value, c.Value)

		assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/me", nil, c).Code)
	})

	t.Run("wrong password and unknown email look alike", func(t *testing.T) {
		wrong := ts.do(t, http.MethodPost, "/api/login", map[string]string{"login": "ann@example.com", "pass": "nope"}, nil)
		unknown := ts.do(t, http.MethodPost, "/api/login", map[string]string{"login": "ghost@example.com", "pass": "nope"}, nil)

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
		assert.Equal(t, "invalid_credentials", errorCode(t, wrong))
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/login", map[string]string{"login": "ann@example.com"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_fields", errorCode(t, rec))
	})
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t, Options{})
	c := ts.register(t, "Ann", "ann@example.com", "pw")

	rec := ts.do(t, http.MethodPost, "/api/logout", nil, c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])

	cleared := sidCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	me := ts.do(t, http.MethodGet, "/api/me", nil, c)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
	assert.Equal(t, "unauthorized", errorCode(t, me))

	// Repeating, or logging out without a session, is still fine.
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/logout", nil, c).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/logout", nil, nil).Code)
}

func TestMe_Unauthorized(t *testing.T) {
	ts := newTestServer(t, Options{})

	rec := ts.do(t, http.MethodGet, "/api/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))

	rec = ts.do(t, http.MethodGet, "/api/me", nil, &http.Cookie{Name: sessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/me", map[string]string{"city": "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
