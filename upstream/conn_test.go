package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"github.com/jrsteele09/go-admin-frontend/upstream"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	CSRF   string
	Cookie map[string]string
	Body   string
}

// stubAccountService mimics the account service: GET /csrf issues a token bound to a cookie, and
// writes are only accepted with the matching token header.
type stubAccountService struct {
	mu    sync.Mutex
	calls []recordedCall

	handlers map[string]http.HandlerFunc
}

func newStub(t *testing.T) (*stubAccountService, *httptest.Server) {
	t.Helper()
	stub := &stubAccountService{handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return stub, srv
}

func (s *stubAccountService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	cookies := map[string]string{}
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{
		Method: r.Method,
		Path:   r.URL.Path,
		CSRF:   r.Header.Get(upstream.CSRFHeader),
		Cookie: cookies,
		Body:   string(body),
	})
	h, ok := s.handlers[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (s *stubAccountService) on(pattern string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[pattern] = h
}

func (s *stubAccountService) recorded() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedCall(nil), s.calls...)
}

func csrfHandler(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: token, Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"csrfToken":"` + token + `"}`))
	}
}

func newClient(t *testing.T, url string) *upstream.Client {
	t.Helper()
	c, err := upstream.NewClient(url, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := upstream.NewClient("ftp://example.com", time.Second)
	require.Error(t, err)

	c, err := upstream.NewClient("http://localhost:4550/", time.Second)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4550", c.BaseURL())
}

func TestConn_RelayAttachesFreshToken(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /csrf", csrfHandler("tok"))
	stub.on("POST /account/approve/42", func(w http.ResponseWriter, r *http.Request) {
		xsrf, err := r.Cookie("XSRF-TOKEN")
		if err != nil || xsrf.Value != r.Header.Get(upstream.CSRFHeader) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	conn, err := newClient(t, srv.URL).Open("SESSION=abc", "cy")
	require.NoError(t, err)

	res, err := conn.Relay(context.Background(), http.MethodPost, upstream.ApprovePath("42"), struct{}{})
	require.NoError(t, err)
	require.Equal(t, "tok", res.CSRFToken)

	calls := stub.recorded()
	require.Len(t, calls, 2)

	require.Equal(t, "GET", calls[0].Method)
	require.Equal(t, "/csrf", calls[0].Path)
	require.Equal(t, "abc", calls[0].Cookie["SESSION"])
	require.Equal(t, "cy", calls[0].Cookie["lang"])

	require.Equal(t, "POST", calls[1].Method)
	require.Equal(t, "tok", calls[1].CSRF)
	require.Equal(t, "abc", calls[1].Cookie["SESSION"])
	require.Equal(t, "tok", calls[1].Cookie["XSRF-TOKEN"])
	require.JSONEq(t, `{}`, calls[1].Body)
}

func TestConn_RelayCapturesSessionCookies(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /csrf", csrfHandler("tok"))
	stub.on("POST /login/admin", func(w http.ResponseWriter, r *http.Request) {
		var body upstream.Login
		_ = json.NewDecoder(r.Body).Decode(&body)
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "s1", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	conn, err := newClient(t, srv.URL).Open("", "en")
	require.NoError(t, err)

	res, err := conn.Relay(context.Background(), http.MethodPost, upstream.PathLogin, upstream.Login{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	require.Contains(t, res.Cookies, "JSESSIONID=s1")
	require.Contains(t, res.Cookies, "XSRF-TOKEN=tok")
	require.NotContains(t, res.Cookies, "lang=")

	calls := stub.recorded()
	require.JSONEq(t, `{"username":"admin","password":"pw"}`, calls[1].Body)
}

func TestConn_RelayAbortsWithoutToken(t *testing.T) {
	for name, h := range map[string]http.HandlerFunc{
		"empty token": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"csrfToken":""}`))
		},
		"missing field": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		},
	} {
		t.Run(name, func(t *testing.T) {
			stub, srv := newStub(t)
			stub.on("GET /csrf", h)
			stub.on("DELETE /account/7", func(w http.ResponseWriter, r *http.Request) {})

			conn, err := newClient(t, srv.URL).Open("SESSION=abc", "en")
			require.NoError(t, err)

			_, err = conn.Relay(context.Background(), http.MethodDelete, upstream.AccountPath("7"), nil)
			require.ErrorIs(t, err, apperrors.ErrMissingCSRFToken)
			require.Len(t, stub.recorded(), 1, "write must not be attempted")
		})
	}
}

func TestConn_RelayCSRFFailure(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /csrf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	conn, err := newClient(t, srv.URL).Open("SESSION=stale", "en")
	require.NoError(t, err)

	_, err = conn.Relay(context.Background(), http.MethodPut, upstream.PathSupportBanner, upstream.BannerUpdate{Title: "t"})
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, upstream.StatusCode(err))
	require.Len(t, stub.recorded(), 1)
}

func TestConn_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		expected    string
	}{
		{name: "plain text", contentType: "text/plain", body: "user exists", expected: "user exists"},
		{name: "json string", contentType: "application/json", body: `"Invalid passcode"`, expected: "Invalid passcode"},
		{name: "json object", contentType: "application/json", body: `{"error":"bad"}`, expected: ""},
		{name: "empty", contentType: "text/plain", body: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub, srv := newStub(t)
			stub.on("GET /csrf", csrfHandler("tok"))
			stub.on("POST /account/register/admin", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			})

			conn, err := newClient(t, srv.URL).Open("", "en")
			require.NoError(t, err)

			_, err = conn.Relay(context.Background(), http.MethodPost, upstream.PathRegisterAdmin, upstream.Registration{})
			require.Error(t, err)

			var ue *upstream.Error
			require.ErrorAs(t, err, &ue)
			require.Equal(t, http.StatusBadRequest, ue.StatusCode)
			require.Equal(t, tt.expected, upstream.Message(err))
		})
	}

	require.Equal(t, "", upstream.Message(io.EOF))
	require.Equal(t, 0, upstream.StatusCode(io.EOF))
}

func TestConn_GetValidatesSchemas(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /account/all", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})
	stub.on("GET /account/pending", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2]`))
	})
	stub.on("GET /statistics/user-activity", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":[1,2,3]}`))
	})
	stub.on("GET /support-banner/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"Help","content":"Call us"}`))
	})

	conn, err := newClient(t, srv.URL).Open("SESSION=abc", "en")
	require.NoError(t, err)
	ctx := context.Background()

	var accounts upstream.List
	require.NoError(t, conn.Get(ctx, upstream.PathAccountAll, &accounts))
	require.Len(t, accounts, 2)

	var pending upstream.List
	err = conn.Get(ctx, upstream.PathAccountPending, &pending)
	require.ErrorIs(t, err, apperrors.ErrInvalidResponse)

	var stats upstream.Stats
	require.NoError(t, conn.Get(ctx, upstream.PathStatsUserActivity, &stats))
	out, err := json.Marshal(stats)
	require.NoError(t, err)
	require.JSONEq(t, `{"daily":[1,2,3]}`, string(out))

	var banner upstream.Banner
	require.NoError(t, conn.Get(ctx, upstream.PathSupportBanner, &banner))
	require.Equal(t, "Help", banner.Title)
	require.Equal(t, "Call us", banner.Content)
}

func TestConn_GetText(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /account/username", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("admin"))
	})
	stub.on("GET /account/email", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"admin@example.com"`))
	})
	stub.on("GET /account/date-of-birth/day", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`7`))
	})

	conn, err := newClient(t, srv.URL).Open("SESSION=abc", "en")
	require.NoError(t, err)
	ctx := context.Background()

	v, err := conn.GetText(ctx, upstream.PathAccountUsername)
	require.NoError(t, err)
	require.Equal(t, "admin", v)

	v, err = conn.GetText(ctx, upstream.PathAccountEmail)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", v)

	v, err = conn.GetText(ctx, upstream.PathAccountDobDay)
	require.NoError(t, err)
	require.Equal(t, "7", v)

	_, err = conn.GetText(ctx, upstream.PathAccountDobMonth)
	require.Equal(t, http.StatusNotFound, upstream.StatusCode(err))
}

func TestConn_ContextCancelled(t *testing.T) {
	stub, srv := newStub(t)
	stub.on("GET /csrf", csrfHandler("tok"))

	conn, err := newClient(t, srv.URL).Open("", "en")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conn.FetchCSRF(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_OpenRejectsMalformedCookie(t *testing.T) {
	c := newClient(t, "http://localhost:4550")
	_, err := c.Open("=;;", "en")
	require.Error(t, err)
}

func TestPaths_EscapeIdentifiers(t *testing.T) {
	require.Equal(t, "/account/approve/a%2Fb", upstream.ApprovePath("a/b"))
	require.Equal(t, "/account/reject/9", upstream.RejectPath("9"))
	require.Equal(t, "/account/9", upstream.AccountPath("9"))
}
