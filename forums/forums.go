// Package forums is the registry of ForumMagnum sites that this tool talks to
package forums

import (
	"fmt"
	"strings"
)

// Forum describes one of the supported forums
type Forum struct {
	Key        string
	Name       string
	GraphQLURL string
	BaseURL    string
	Aliases    []string
}

// registry is in display order and is never mutated
var registry = []Forum{
	{
		Key:        "lesswrong",
		Name:       "LessWrong",
		GraphQLURL: "https://www.lesswrong.com/graphql",
		BaseURL:    "https://www.lesswrong.com",
		Aliases:    []string{"lw", "less-wrong"},
	},
	{
		Key:        "eaforum",
		Name:       "EA Forum",
		GraphQLURL: "https://forum.effectivealtruism.org/graphql",
		BaseURL:    "https://forum.effectivealtruism.org",
		Aliases:    []string{"ea", "effective-altruism", "ea-forum"},
	},
	{
		Key:        "alignmentforum",
		Name:       "Alignment Forum",
		GraphQLURL: "https://www.alignmentforum.org/graphql",
		BaseURL:    "https://www.alignmentforum.org",
		Aliases:    []string{"af", "alignment", "alignment-forum"},
	},
}

// Default is the forum used when none is given on the command line
const Default = "lesswrong"

// UnknownForumError is returned when a name matches no forum or alias
type UnknownForumError struct {
	Name string
}

func (e *UnknownForumError) Error() string {
	return fmt.Sprintf("unknown forum: %s. Valid options: %s", e.Name, strings.Join(Keys(), ", "))
}

// Keys returns the canonical forum keys in registry order
func Keys() []string {
	keys := make([]string, len(registry))
	for i, f := range registry {
		keys[i] = f.Key
	}
	return keys
}

// All returns a copy of every registered forum
func All() []Forum {
	out := make([]Forum, len(registry))
	for i, f := range registry {
		out[i] = f
		out[i].Aliases = append([]string(nil), f.Aliases...)
	}
	return out
}

// Resolve maps a forum key or alias, in any case, to its canonical key.
// Keys are matched before aliases.
func Resolve(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))

	for _, f := range registry {
		if f.Key == s {
			return f.Key, nil
		}
	}

	for _, f := range registry {
		for _, alias := range f.Aliases {
			if alias == s {
				return f.Key, nil
			}
		}
	}

	return "", &UnknownForumError{Name: s}
}

// Lookup resolves a name and returns the corresponding forum
func Lookup(name string) (*Forum, error) {
	key, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	for _, f := range All() {
		if f.Key == key {
			return &f, nil
		}
	}
	return nil, &UnknownForumError{Name: name}
}

// TokenKey returns the key under which the login token for a forum is stored.
// The Alignment Forum shares accounts with LessWrong.
func TokenKey(key string) string {
	if key == "alignmentforum" {
		return "lesswrong"
	}
	return key
}
