package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.DigestDays)
	assert.Equal(t, "digests", cfg.OutputDir)
	assert.Empty(t, cfg.Subscriptions)
	assert.Equal(t, path, cfg.Path())

	// nothing is written until Save
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"subscriptions": [{"forum": "lesswrong", "user": "daniel-kokotajlo"}],
		"digest_days": 14,
		"output_dir": "out",
		"auth": {"eaforum": "abc"}
	}`), 0600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.DigestDays)
	assert.Equal(t, "out", cfg.OutputDir)
	require.Len(t, cfg.Subscriptions, 1)
	assert.Equal(t, "daniel-kokotajlo", cfg.Subscriptions[0].User)

	tok, ok := cfg.Token("ea")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTokenFolding(t *testing.T) {
	cfg := Default("")

	key, err := cfg.SetToken("alignmentforum", "tok1")
	require.NoError(t, err)
	assert.Equal(t, "lesswrong", key)

	tok, ok := cfg.Token("lesswrong")
	assert.True(t, ok)
	assert.Equal(t, "tok1", tok)

	key, err = cfg.SetToken("LW", "tok2")
	require.NoError(t, err)
	assert.Equal(t, "lesswrong", key)

	tok, ok = cfg.Token("af")
	assert.True(t, ok)
	assert.Equal(t, "tok2", tok)
}

func TestTokenMissing(t *testing.T) {
	cfg := Default("")
	_, ok := cfg.Token("eaforum")
	assert.False(t, ok)

	_, ok = cfg.Token("not-a-forum")
	assert.False(t, ok)
}

func TestSetTokenUnknownForum(t *testing.T) {
	cfg := Default("")
	_, err := cfg.SetToken("reddit", "x")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.SetToken("ea", "secret")
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	var raw map[string]interface{}
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf, &raw))
	assert.Equal(t, map[string]interface{}{"eaforum": "secret"}, raw["auth"])
	assert.EqualValues(t, 7, raw["digest_days"])

	loaded, err := Load(path)
	require.NoError(t, err)
	tok, ok := loaded.Token("eaforum")
	assert.True(t, ok)
	assert.Equal(t, "secret", tok)
}

func TestEnvTokensAreNotSaved(t *testing.T) {
	t.Setenv("ALIGNMENTFORUM_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	require.NoError(t, err)
	ApplyEnvOverrides(cfg)

	tok, ok := cfg.Token("lesswrong")
	assert.True(t, ok)
	assert.Equal(t, "from-env", tok)

	require.NoError(t, cfg.Save())
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(buf), "from-env")
}

func TestSubscribe(t *testing.T) {
	cfg := Default("")
	sub := Subscription{Forum: "lesswrong", Topic: "ai"}

	assert.True(t, cfg.Subscribe(sub))
	assert.False(t, cfg.Subscribe(sub))
	assert.Len(t, cfg.Subscriptions, 1)

	assert.True(t, cfg.Unsubscribe(sub))
	assert.False(t, cfg.Unsubscribe(sub))
	assert.Empty(t, cfg.Subscriptions)
}

func TestSaveWithoutPath(t *testing.T) {
	assert.Error(t, Default("").Save())
}

func TestOwnEnvTokenWinsOverSharedOne(t *testing.T) {
	t.Setenv("LESSWRONG_TOKEN", "lw-env")
	t.Setenv("ALIGNMENTFORUM_TOKEN", "af-env")

	cfg := Default("")
	ApplyEnvOverrides(cfg)

	tok, ok := cfg.Token("lesswrong")
	assert.True(t, ok)
	assert.Equal(t, "lw-env", tok)

	tok, ok = cfg.Token("af")
	assert.True(t, ok)
	assert.Equal(t, "lw-env", tok)
}

func TestSaveKeepsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"digest_days": 0, "output_dir": "d", "custom": {"a": 1}}`), 0600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.DigestDays)

	_, err = cfg.SetToken("lw", "tok")
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	var raw map[string]interface{}
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf, &raw))

	assert.EqualValues(t, 0, raw["digest_days"])
	assert.Equal(t, "d", raw["output_dir"])
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, raw["custom"])
	assert.Equal(t, map[string]interface{}{"lesswrong": "tok"}, raw["auth"])
	assert.NotContains(t, raw, "subscriptions")
}

func TestSaveWritesSubscriptionChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_dir": "d"}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Subscribe(Subscription{Forum: "eaforum", User: "alice"})
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Subscription{{Forum: "eaforum", User: "alice"}}, loaded.Subscriptions)
	assert.Equal(t, 7, loaded.DigestDays)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "forum.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FORUM_TEST_LOAD_ENV=yes\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("FORUM_TEST_LOAD_ENV") })

	var logs bytes.Buffer
	log := zerolog.New(&logs)

	LoadEnv(log, envFile)
	assert.Equal(t, "yes", os.Getenv("FORUM_TEST_LOAD_ENV"))

	LoadEnv(log, filepath.Join(dir, "missing.env"))
	assert.Empty(t, logs.String())

	// a directory exists but cannot be read as a .env file
	LoadEnv(log, dir)
	assert.Contains(t, logs.String(), "could not load .env file")
}
