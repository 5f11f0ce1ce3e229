package upstream

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/publicsuffix"
)

// LangCookie is forwarded so the account service answers in the browser's language.
const LangCookie = "lang"

// CSRFHeader carries the anti-forgery token on writes.
const CSRFHeader = "X-XSRF-TOKEN"

const maxBodyBytes = 4 << 20

// Client talks to the account service. It holds no per-browser state; every browser request
// opens its own Conn.
type Client struct {
	baseURL   *url.URL
	transport http.RoundTripper
	timeout   time.Duration
	validate  *validator.Validate
}

// Credentials identify the browser a call is made for.
type Credentials struct {
	// SessionCookie is the stored upstream session as a Cookie header value; empty before login.
	SessionCookie string
	Lang          string
}

// NewClient creates a client for the account service at baseURL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("[upstream NewClient] parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("[upstream NewClient] base url must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL:   u,
		transport: http.DefaultTransport,
		timeout:   timeout,
		validate:  validator.New(),
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Open starts a conversation with the account service through an isolated cookie jar seeded
// with the stored upstream session cookie (a Cookie header value, may be empty) and the
// browser's language.
func (c *Client) Open(sessionCookie, lang string) (*Conn, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("[upstream Open] creating cookie jar: %w", err)
	}

	var seed []*http.Cookie
	if sessionCookie != "" {
		cookies, err := http.ParseCookie(sessionCookie)
		if err != nil {
			return nil, fmt.Errorf("[upstream Open] parsing stored session cookie: %w", err)
		}
		seed = append(seed, cookies...)
	}
	if lang != "" {
		seed = append(seed, &http.Cookie{Name: LangCookie, Value: lang})
	}
	jar.SetCookies(c.baseURL, seed)

	return &Conn{
		client: c,
		jar:    jar,
		http: &http.Client{
			Transport: c.transport,
			Jar:       jar,
			Timeout:   c.timeout,
		},
	}, nil
}

// OpenFor is Open for the given credentials.
func (c *Client) OpenFor(creds Credentials) (*Conn, error) {
	return c.Open(creds.SessionCookie, creds.Lang)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// check validates a decoded response against its declared schema.
func (c *Client) check(out any) error {
	if v, ok := out.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	rv := reflect.Indirect(reflect.ValueOf(out))
	if rv.Kind() == reflect.Struct {
		return c.validate.Struct(out)
	}
	return nil
}
