// Package ringcentral is a minimal RingCentral REST client: JWT login and fax submission
package ringcentral

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
)

const (
	serverDefault  = "https://platform.ringcentral.com"
	defaultTimeout = 60 * time.Second
	defaultUA      = "autofax-ringcentral"

	tokenPath = "/restapi/oauth/token"
	faxPath   = "/restapi/v1.0/account/~/extension/~/fax"

	jwtGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// refreshSkew is how close to expiry a shared token may get before a new login
	refreshSkew = 60 * time.Second
)

// SessionMode picks when the client logs in
type SessionMode string

// session modes
const (
	// SessionPerDispatch logs in on every Authenticate call
	SessionPerDispatch SessionMode = "per-dispatch"
	// SessionShared logs in once and reuses the token until it nears expiry
	SessionShared SessionMode = "shared"
)

// Options configures the Client. Credentials are opaque and never parsed
type Options struct {
	Server       string
	ClientID     string
	ClientSecret string
	JWT          string
	Session      SessionMode
	UserAgent    string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Client holds one gateway session. Login is serialized behind mu
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// tokenResponse is the subset of the oauth reply we use
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// New creates a client with defaults applied
func New(o Options) *Client {
	o.Server = strings.TrimRight(strings.TrimSpace(o.Server), "/")
	if o.Server == "" {
		o.Server = serverDefault
	}
	if o.Session == "" {
		o.Session = SessionPerDispatch
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("ringcentral"),
		now:  time.Now,
	}
}

// Server returns the configured API base url
func (c *Client) Server() string { return c.opts.Server }

// Session returns the configured session mode
func (c *Client) Session() SessionMode { return c.opts.Session }

// Authenticate logs in with the JWT grant. In shared mode a still valid token is kept
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.Session == SessionShared && c.token != "" && c.now().Add(refreshSkew).Before(c.expires) {
		return nil
	}
	return c.login(ctx)
}

// login must be called with mu held
func (c *Client) login(ctx context.Context) error {
	if c.opts.ClientID == "" || c.opts.ClientSecret == "" || c.opts.JWT == "" {
		return perr.Unavailablef("ringcentral credentials are not configured")
	}

	form := url.Values{}
	form.Set("grant_type", jwtGrant)
	form.Set("assertion", c.opts.JWT)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Server+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "ringcentral new login request failed")
	}
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "ringcentral login failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK {
		return perr.Newf(perr.ErrorCodeUnknown, "ringcentral login failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "ringcentral login: bad token response")
	}
	if tok.AccessToken == "" {
		return perr.Internalf("ringcentral login: empty access token")
	}

	c.token = tok.AccessToken
	c.expires = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.log.Debug().
		Dur("latency", c.now().Sub(start)).
		Int64("expires_in", tok.ExpiresIn).
		Str("session", string(c.opts.Session)).
		Msg("ringcentral login ok")
	return nil
}

// bearer returns the current access token
func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
