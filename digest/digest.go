// Package digest collects recent activity for every subscription in the
// config and renders it as a markdown document
package digest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/alexflint/forum-publisher/config"
	"github.com/alexflint/forum-publisher/forums"
	"github.com/alexflint/forum-publisher/lesswrong"
	"github.com/rs/zerolog"
)

// Fetcher is the part of *lesswrong.Client used to build digests
type Fetcher interface {
	UserActivity(ctx context.Context, slug string, days int) (*lesswrong.UserActivity, error)
	TopicActivity(ctx context.Context, slug string, days int) (*lesswrong.TopicActivity, error)
}

// Entry is the activity for one subscription. If fetching failed then Err is
// set and both activities are nil.
type Entry struct {
	Subscription config.Subscription
	ForumName    string
	User         *lesswrong.UserActivity
	Topic        *lesswrong.TopicActivity
	Err          error
}

// Digest is the activity for all subscriptions over the same window
type Digest struct {
	Days        int
	GeneratedAt time.Time
	Entries     []Entry
}

// Failed counts the entries that could not be fetched
func (d *Digest) Failed() int {
	var n int
	for _, e := range d.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Builder fetches activity for subscriptions
type Builder struct {
	// ClientFor returns a fetcher for a forum name
	ClientFor func(forum string) (Fetcher, error)
	Log       zerolog.Logger
	Now       func() time.Time
}

// Build fetches activity for each subscription in turn. A subscription that
// fails is recorded in its entry and does not stop the others. The only
// error returned is cancellation of ctx.
func (b *Builder) Build(ctx context.Context, subs []config.Subscription, days int) (*Digest, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	d := Digest{
		Days:        days,
		GeneratedAt: now(),
	}

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := b.fetch(ctx, sub, days)
		if entry.Err != nil {
			b.Log.Warn().Err(entry.Err).Str("subscription", sub.String()).Msg("error fetching subscription")
		}
		d.Entries = append(d.Entries, entry)
	}

	return &d, nil
}

func (b *Builder) fetch(ctx context.Context, sub config.Subscription, days int) Entry {
	entry := Entry{Subscription: sub, ForumName: sub.Forum}

	f, err := forums.Lookup(sub.Forum)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.ForumName = f.Name

	client, err := b.ClientFor(f.Key)
	if err != nil {
		entry.Err = err
		return entry
	}

	switch {
	case sub.User != "":
		entry.User, entry.Err = client.UserActivity(ctx, sub.User, days)
	case sub.Topic != "":
		entry.Topic, entry.Err = client.TopicActivity(ctx, sub.Topic, days)
	default:
		entry.Err = fmt.Errorf("subscription on %s has neither a user nor a topic", sub.Forum)
	}
	return entry
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan 02, 2006")
	},
	"excerpt": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "..."
	},
}

var tpl = template.Must(template.New("digest").Funcs(funcs).Parse(digestTemplate))

const digestTemplate = `# Forum digest for {{date .GeneratedAt}}

Activity from the last {{.Days}} days.
{{range .Entries}}
{{- if .Err}}
## {{.Subscription}}

Could not fetch: {{.Err}}
{{else if .User}}
## [{{.ForumName}}] {{.User.User.Name}} (@{{.User.User.Slug}})

### Posts ({{len .User.Posts}})
{{range .User.Posts}}
- [{{.Title}}]({{.PageURL}}) ({{date .PostedAt}}, score {{.BaseScore}})
{{- else}}
No posts in this period.
{{- end}}

### Comments ({{len .User.Comments}})
{{range .User.Comments}}
- On [{{.PostTitle "Unknown post"}}]({{.PageURL}}) ({{date .PostedAt}}, score {{.BaseScore}})
{{- if .Contents}}: "{{excerpt .Contents.PlaintextDescription 100}}"{{end}}
{{- else}}
No comments in this period.
{{- end}}
{{else if .Topic}}
## [{{.ForumName}}] Topic: {{.Topic.Topic.Name}}

### Posts ({{len .Topic.Posts}})
{{range .Topic.Posts}}
- [{{.Title}}]({{.PageURL}}) by {{.AuthorName}} ({{date .PostedAt}}, score {{.BaseScore}})
{{- else}}
No posts in this period.
{{- end}}
{{end}}
{{- else}}
There are no subscriptions. Add some with the subscribe command.
{{end}}`

// Render writes a digest as markdown
func Render(w io.Writer, d *Digest) error {
	if err := tpl.Execute(w, d); err != nil {
		return fmt.Errorf("error executing digest template: %w", err)
	}
	return nil
}

// Filename is where a digest generated at t is written within dir
func Filename(dir string, t time.Time) string {
	return filepath.Join(dir, "digest-"+t.Format("2006-01-02")+".md")
}

// WriteFile renders a digest into dir and returns the path it was written to
func WriteFile(d *Digest, dir string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating %s: %w", dir, err)
	}

	path := Filename(dir, d.GeneratedAt)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing to %s: %w", path, err)
	}
	return path, nil
}
