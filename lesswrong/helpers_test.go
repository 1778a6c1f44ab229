package lesswrong

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixed clock used by all tests
var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

var opNamePattern = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

type recordedRequest struct {
	Op        string
	Variables map[string]interface{}
	Cookie    string
}

// fakeServer answers GraphQL requests with a canned body per operation name
type fakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]string
	requests  []recordedRequest
}

func newFakeServer(t *testing.T, responses map[string]string) *fakeServer {
	s := &fakeServer{responses: responses}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	buf, _ := io.ReadAll(r.Body)

	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var op string
	if m := opNamePattern.FindStringSubmatch(body.Query); m != nil {
		op = m[1]
	}

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		Op:        op,
		Variables: body.Variables,
		Cookie:    r.Header.Get("Cookie"),
	})
	resp, ok := s.responses[op]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "no canned response for "+op, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, resp)
}

func (s *fakeServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

// staticTokens is a TokenSource keyed by canonical forum key
type staticTokens map[string]string

func (s staticTokens) Token(forum string) (string, bool) {
	tok, ok := s[forum]
	return tok, ok
}

func newTestClient(t *testing.T, srv *fakeServer, tokens TokenSource) *Client {
	c, err := NewClient("lesswrong", tokens,
		WithEndpoint(srv.URL),
		WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return c
}
