package lesswrong

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ddpMessage is a Meteor DDP message. Each message type uses a subset of the
// fields: connect sends Version and Support, a method call sends Method and
// Params, and the server answers a call with Result or Error.
type ddpMessage struct {
	Msg     string        `json:"msg"`
	ID      string        `json:"id,omitempty"`
	Version string        `json:"version,omitempty"`
	Support []string      `json:"support,omitempty"`
	Method  string        `json:"method,omitempty"`
	Params  []loginParams `json:"params,omitempty"`
	Result  *loginResult  `json:"result,omitempty"`
	Error   *ddpError     `json:"error,omitempty"`
}

type loginParams struct {
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	Password struct {
		Digest    string `json:"digest"`
		Algorithm string `json:"algorithm"`
	} `json:"password"`
}

type loginResult struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type ddpError struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

func (e *ddpError) String() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Message
}

// loginCall builds the DDP method call for a password login
func loginCall(email, password string) ddpMessage {
	sum := sha256.Sum256([]byte(password))

	var p loginParams
	p.User.Email = email
	p.Password.Digest = hex.EncodeToString(sum[:])
	p.Password.Algorithm = "sha-256"

	return ddpMessage{Msg: "method", Method: "login", ID: "1", Params: []loginParams{p}}
}

// send writes a DDP message in a sockjs frame, which is an array of
// JSON-encoded strings
func send(ws *websocket.Conn, msg ddpMessage) error {
	buf, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshalling %s message: %w", msg.Msg, err)
	}
	frame, err := json.Marshal([]string{string(buf)})
	if err != nil {
		return err
	}
	if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("error sending %s message: %w", msg.Msg, err)
	}
	return nil
}

// Auth is the outcome of a successful login
type Auth struct {
	UserID string
	Token  string
}

type authResult struct {
	auth Auth
	err  error
}

const authTimeout = 10 * time.Second

const sessionChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// SockJSURL returns a websocket URL for the Meteor server behind a forum,
// with a fresh sockjs server and session ID
func SockJSURL(baseURL string) string {
	u := baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	session := make([]byte, 8)
	for i := range session {
		session[i] = sessionChars[rand.Intn(len(sessionChars))]
	}

	return fmt.Sprintf("%s/sockjs/%03d/%s/websocket", strings.TrimRight(u, "/"), rand.Intn(1000), session)
}

// Login authenticates with an email and password over this forum's websocket
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	return Authenticate(ctx, c.socketURL, email, password, c.log)
}

// Authenticate connects to a Meteor websocket, logs in with an email and
// password, and returns the login token
func Authenticate(ctx context.Context, wsURL, email, password string, log zerolog.Logger) (*Auth, error) {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("error dialing websocket: %w (HTTP response status was %v)", err, resp.Status)
		}
		return nil, fmt.Errorf("error dialing websocket: %w", err)
	}
	defer ws.Close()

	connect := ddpMessage{Msg: "connect", Version: "1", Support: []string{"1", "pre2", "pre1"}}
	if err := send(ws, connect); err != nil {
		return nil, err
	}
	if err := send(ws, loginCall(email, password)); err != nil {
		return nil, err
	}

	// buffered so the reader can exit after a timeout
	ch := make(chan authResult, 1)
	go func() {
		ch <- readToken(ws, log)
	}()

	select {
	case x := <-ch:
		if x.err != nil {
			return nil, fmt.Errorf("authentication failed: %w", x.err)
		}
		return &x.auth, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readToken reads sockjs frames until the server answers the login call
func readToken(ws *websocket.Conn, log zerolog.Logger) authResult {
	for {
		_, buf, err := ws.ReadMessage()
		if err != nil {
			return authResult{err: fmt.Errorf("error reading from websocket: %w", err)}
		}
		if len(buf) == 0 {
			continue
		}

		// "o" opens the session and "h" is a heartbeat; only "a" carries messages
		kind, sz := utf8.DecodeRune(buf)
		if kind != 'a' {
			log.Debug().Msgf("ignoring sockjs frame of type %q", kind)
			continue
		}

		var parts []string
		if err := json.Unmarshal(buf[sz:], &parts); err != nil {
			return authResult{err: fmt.Errorf("error decoding sockjs frame: %w", err)}
		}

		for _, part := range parts {
			// decode the header first since other message types reuse field
			// names with different shapes
			var header struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal([]byte(part), &header); err != nil {
				return authResult{err: err}
			}
			if header.Msg != "result" {
				log.Debug().Str("msg", header.Msg).Msg("ignoring DDP message")
				continue
			}

			var msg ddpMessage
			if err := json.Unmarshal([]byte(part), &msg); err != nil {
				return authResult{err: err}
			}
			if msg.Error != nil {
				return authResult{err: fmt.Errorf("server said: %s", msg.Error)}
			}
			if msg.Result == nil || msg.Result.Token == "" {
				return authResult{err: errors.New("got a result message with neither a token nor an error")}
			}
			return authResult{auth: Auth{UserID: msg.Result.ID, Token: msg.Result.Token}}
		}
	}
}
