// Package config loads and stores the JSON settings file shared by all commands
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/forum-publisher/forums"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultDigestDays = 7
	defaultOutputDir  = "digests"
)

// Subscription is a user or topic that the digest command follows.
// Exactly one of User and Topic is set.
type Subscription struct {
	Forum string `json:"forum"`
	User  string `json:"user,omitempty"`
	Topic string `json:"topic,omitempty"`
}

func (s Subscription) String() string {
	if s.User != "" {
		return fmt.Sprintf("user %s on %s", s.User, s.Forum)
	}
	return fmt.Sprintf("topic %s on %s", s.Topic, s.Forum)
}

// Config is the contents of config.json
type Config struct {
	Subscriptions []Subscription    `json:"subscriptions"`
	DigestDays    int               `json:"digest_days"`
	OutputDir     string            `json:"output_dir"`
	Auth          map[string]string `json:"auth,omitempty"`

	path      string                     // where Save writes to
	envAuth   map[string]string          // tokens from the environment, never saved
	raw       map[string]json.RawMessage // top-level keys as read from the file
	defaulted map[string]bool            // keys filled in by setDefaults
}

// DefaultPath returns the location of the config file when none is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "forum-publisher", "config.json")
}

// Default returns a config that will be saved to path. Each call returns a
// distinct instance.
func Default(path string) *Config {
	return &Config{
		Subscriptions: []Subscription{},
		DigestDays:    defaultDigestDays,
		OutputDir:     defaultOutputDir,
		path:          path,
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned and nothing is written until Save is called.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Config{path: path}
	if err := json.Unmarshal(buf, &cfg.raw); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// setDefaults fills in missing settings in memory. Save leaves the file's own
// values for these keys alone.
func (c *Config) setDefaults() {
	c.defaulted = make(map[string]bool)
	if c.Subscriptions == nil {
		c.Subscriptions = []Subscription{}
		c.defaulted["subscriptions"] = true
	}
	if c.DigestDays <= 0 {
		c.DigestDays = defaultDigestDays
		c.defaulted["digest_days"] = true
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
		c.defaulted["output_dir"] = true
	}
}

// LoadEnv reads .env files, by default the one in the working directory. A
// missing file is ignored and any other problem is logged.
func LoadEnv(log zerolog.Logger, filenames ...string) {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}
}

// ApplyEnvOverrides picks up login tokens from the environment.
// Recognized variables are LESSWRONG_TOKEN, EAFORUM_TOKEN and
// ALIGNMENTFORUM_TOKEN. They take precedence over the file but are not saved.
// A forum's own variable wins over one that shares its token.
func ApplyEnvOverrides(cfg *Config) {
	for _, key := range forums.Keys() {
		tok := os.Getenv(strings.ToUpper(key) + "_TOKEN")
		if tok == "" {
			continue
		}

		target := forums.TokenKey(key)
		if target != key && os.Getenv(strings.ToUpper(target)+"_TOKEN") != "" {
			continue
		}
		if cfg.envAuth == nil {
			cfg.envAuth = make(map[string]string)
		}
		cfg.envAuth[target] = tok
	}
}

// Path is the file that Save writes to
func (c *Config) Path() string {
	return c.path
}

// Token returns the login token for a forum name or alias
func (c *Config) Token(forum string) (string, bool) {
	key, err := forums.Resolve(forum)
	if err != nil {
		return "", false
	}
	key = forums.TokenKey(key)

	if tok, ok := c.envAuth[key]; ok && tok != "" {
		return tok, true
	}
	tok, ok := c.Auth[key]
	return tok, ok && tok != ""
}

// SetToken stores a login token in memory and returns the key it was stored
// under. Call Save to persist it.
func (c *Config) SetToken(forum, token string) (string, error) {
	key, err := forums.Resolve(forum)
	if err != nil {
		return "", err
	}
	key = forums.TokenKey(key)

	if c.Auth == nil {
		c.Auth = make(map[string]string)
	}
	c.Auth[key] = token
	return key, nil
}

// Subscribe adds a subscription and reports whether it was not already present
func (c *Config) Subscribe(sub Subscription) bool {
	for _, s := range c.Subscriptions {
		if s == sub {
			return false
		}
	}
	c.Subscriptions = append(c.Subscriptions, sub)
	return true
}

// Unsubscribe removes a subscription and reports whether it was present
func (c *Config) Unsubscribe(sub Subscription) bool {
	for i, s := range c.Subscriptions {
		if s == sub {
			c.Subscriptions = append(c.Subscriptions[:i], c.Subscriptions[i+1:]...)
			return true
		}
	}
	return false
}

// Save rewrites the whole config file. There is no locking: if two processes
// save at once, the last one wins.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path to save to")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	buf, err := json.MarshalIndent(c.merged(), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	err = os.WriteFile(c.path, append(buf, '\n'), 0600)
	if err != nil {
		return fmt.Errorf("error writing to %s: %w", c.path, err)
	}
	return nil
}

// merged returns the keys read from the file with the settings that may have
// changed written over them. Keys this package does not know are kept.
func (c *Config) merged() map[string]interface{} {
	out := make(map[string]interface{}, len(c.raw)+4)
	for k, v := range c.raw {
		out[k] = v
	}

	if !c.defaulted["digest_days"] {
		out["digest_days"] = c.DigestDays
	}
	if !c.defaulted["output_dir"] {
		out["output_dir"] = c.OutputDir
	}
	if !c.defaulted["subscriptions"] || len(c.Subscriptions) > 0 {
		out["subscriptions"] = c.Subscriptions
	}
	if c.Auth != nil {
		out["auth"] = c.Auth
	}
	return out
}
