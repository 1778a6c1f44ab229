// Package lesswrong is a client for the ForumMagnum GraphQL API that is served
// by LessWrong, the EA Forum, and the Alignment Forum
package lesswrong

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexflint/forum-publisher/forums"
	"github.com/kr/pretty"
	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"
)

// TokenSource provides stored login tokens. It is satisfied by *config.Config.
type TokenSource interface {
	Token(forum string) (string, bool)
}

// Client makes API calls to one forum
type Client struct {
	Forum forums.Forum

	graphql   *graphql.Client
	tokens    TokenSource
	log       zerolog.Logger
	now       func() time.Time
	socketURL string
}

type options struct {
	endpoint   string
	socketURL  string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures a Client
type Option func(*options)

// WithEndpoint sends requests to url instead of the forum's GraphQL endpoint
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithSocketURL sets the websocket used by Login
func WithSocketURL(url string) Option {
	return func(o *options) { o.socketURL = url }
}

// WithHTTPClient sets the HTTP client used for GraphQL requests
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the function used to get the current time
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewClient creates a client for the named forum. The name may be a key or an
// alias. Tokens may be nil if no authenticated calls will be made.
func NewClient(forum string, tokens TokenSource, opts ...Option) (*Client, error) {
	f, err := forums.Lookup(forum)
	if err != nil {
		return nil, err
	}

	o := options{
		endpoint: f.GraphQLURL,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.socketURL == "" {
		o.socketURL = SockJSURL(f.BaseURL)
	}

	// copy the HTTP client so that we do not modify the caller's transport
	var hc http.Client
	if o.httpClient != nil {
		hc = *o.httpClient
	}
	hc.Transport = &statusTransport{base: hc.Transport}

	logger := o.logger.With().Str("forum", f.Key).Logger()

	c := Client{
		Forum:     *f,
		graphql:   graphql.NewClient(o.endpoint, graphql.WithHTTPClient(&hc)),
		tokens:    tokens,
		log:       logger,
		now:       o.now,
		socketURL: o.socketURL,
	}

	c.graphql.Log = func(s string) {
		// the headers contain the login cookie
		if strings.HasPrefix(s, ">> headers") {
			return
		}
		logger.Trace().Msg(s)
	}

	return &c, nil
}

// Query runs a named query without authentication and decodes the "data"
// field of the response into resp
func (c *Client) Query(ctx context.Context, op string, vars map[string]interface{}, resp interface{}) error {
	return c.run(ctx, op, vars, resp, "")
}

// QueryAuthenticated runs a named query with the stored login token for this
// forum attached as a cookie. It fails without making a request if there is
// no token.
func (c *Client) QueryAuthenticated(ctx context.Context, op string, vars map[string]interface{}, resp interface{}) error {
	var token string
	var ok bool
	if c.tokens != nil {
		token, ok = c.tokens.Token(c.Forum.Key)
	}
	if !ok || token == "" {
		return fmt.Errorf("%w for %s (stored under %q); see the set-token command",
			ErrNoToken, c.Forum.Key, forums.TokenKey(c.Forum.Key))
	}

	return c.run(ctx, op, vars, resp, token)
}

func (c *Client) run(ctx context.Context, op string, vars map[string]interface{}, resp interface{}, token string) error {
	q, ok := queries[op]
	if !ok {
		return fmt.Errorf("unknown graphql operation %q", op)
	}

	req := graphql.NewRequest(q)
	for k, v := range vars {
		req.Var(k, v)
	}
	if token != "" {
		cookie := http.Cookie{Name: "loginToken", Value: token}
		req.Header.Set("Cookie", cookie.String())
	}

	c.log.Debug().Str("op", op).Bool("authenticated", token != "").Msg("running graphql query")

	if err := c.graphql.Run(ctx, req, resp); err != nil {
		return fmt.Errorf("error performing graphql query %s: %w", op, err)
	}

	if c.log.GetLevel() <= zerolog.TraceLevel {
		c.log.Trace().Str("op", op).Msgf("response: %# v", pretty.Formatter(resp))
	}
	return nil
}

// statusTransport turns non-2xx responses into errors so that they are never
// mistaken for an empty result
type statusTransport struct {
	base http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	res, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return res, nil
}
