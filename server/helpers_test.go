package server_test

import (
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/go-admin-frontend/internal/config"
	"github.com/jrsteele09/go-admin-frontend/server"
	"github.com/jrsteele09/go-admin-frontend/server/loginsession"
	"github.com/jrsteele09/go-admin-frontend/upstream"
	"github.com/stretchr/testify/require"
)

type upstreamCall struct {
	Method string
	Path   string
	CSRF   string
	Cookie map[string]string
	Body   string
}

// stubAccountService stands in for the account service. Unregistered routes answer 404.
type stubAccountService struct {
	mu       sync.Mutex
	calls    []upstreamCall
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
	s.calls = append(s.calls, upstreamCall{
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

func (s *stubAccountService) recorded() []upstreamCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]upstreamCall(nil), s.calls...)
}

// last returns the most recent call to method and path.
func (s *stubAccountService) last(t *testing.T, method, path string) upstreamCall {
	t.Helper()
	calls := s.recorded()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i]
		}
	}
	require.Failf(t, "call not made", "%s %s", method, path)
	return upstreamCall{}
}

func (s *stubAccountService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func withCSRF(stub *stubAccountService) {
	stub.on("GET /csrf", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"csrfToken":"tok"}`))
	})
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func respondStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

type rendered struct {
	Status int
	View   string
	Data   server.ViewData
}

// recordingRenderer records the page view and data each handler renders.
type recordingRenderer struct {
	mu    sync.Mutex
	pages []rendered
}

func (rr *recordingRenderer) Render(w http.ResponseWriter, _ *http.Request, status int, view string, data server.ViewData) error {
	rr.mu.Lock()
	rr.pages = append(rr.pages, rendered{Status: status, View: view, Data: data})
	rr.mu.Unlock()

	w.WriteHeader(status)
	_, err := w.Write([]byte(view))
	return err
}

func (rr *recordingRenderer) last(t *testing.T) rendered {
	t.Helper()
	rr.mu.Lock()
	defer rr.mu.Unlock()
	require.NotEmpty(t, rr.pages, "nothing rendered")
	return rr.pages[len(rr.pages)-1]
}

func (rr *recordingRenderer) count() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.pages)
}

type testServer struct {
	*server.Server
	renderer *recordingRenderer
	sessions *loginsession.InMemoryRepo
}

func newTestServer(t *testing.T, upstreamURL string, overrides ...map[string]any) *testServer {
	t.Helper()

	values := map[string]any{
		"env":               "TEST",
		"upstream.base_url": upstreamURL,
		"session.secret":    "test-secret",
	}
	for _, o := range overrides {
		maps.Copy(values, o)
	}
	cfg, err := config.Load(config.WithValues(values))
	require.NoError(t, err)

	renderer := &recordingRenderer{}
	sessions := loginsession.NewInMemoryRepo()
	s, err := server.New(cfg, sessions, server.WithRenderer(renderer))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return &testServer{Server: s, renderer: renderer, sessions: sessions}
}

func (ts *testServer) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return ts.serve(req, cookies)
}

func (ts *testServer) post(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.serve(req, cookies)
}

func (ts *testServer) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// login signs in through the stub account service and returns the browser session cookie.
func (ts *testServer) login(t *testing.T, stub *stubAccountService) *http.Cookie {
	t.Helper()
	withCSRF(stub)
	stub.on("POST /login/admin", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	rec := ts.post("/login", url.Values{"username": {"admin"}, "password": {"Str0ng!Pass"}})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	c := responseCookie(rec, "admin_session")
	require.NotNil(t, c)
	stub.reset()
	return c
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// carry returns the cookie the response re-issued, or current when none was set.
func carry(rec *httptest.ResponseRecorder, current *http.Cookie) *http.Cookie {
	if c := responseCookie(rec, "admin_session"); c != nil && c.MaxAge >= 0 {
		return c
	}
	return current
}
