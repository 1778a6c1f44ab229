package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexflint/forum-publisher/forums"
	"github.com/alexflint/forum-publisher/lesswrong"
)

// number of comments shown in plain text output
const maxCommentsShown = 10

var rule = strings.Repeat("=", 60)

func formatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// formatCount formats an optional number, printing N/A when it is missing
func formatCount(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprint(*v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func forumName(key string) string {
	if f, err := forums.Lookup(key); err == nil {
		return f.Name
	}
	return "Forum"
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printUserActivity(w io.Writer, activity *lesswrong.UserActivity) {
	user := activity.User

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "[%s] %s (@%s)\n", forumName(activity.Forum), user.Name(), user.Slug)
	fmt.Fprintf(w, "Karma: %s\n", formatCount(user.Karma))
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nPosts (%d):\n", len(activity.Posts))
	if len(activity.Posts) == 0 {
		fmt.Fprintln(w, "  No posts in this period.")
	}
	for _, post := range activity.Posts {
		fmt.Fprintf(w, "  [%s] %s (score: %v)\n", formatDate(post.PostedAt), post.Title, post.BaseScore)
		fmt.Fprintf(w, "    %s\n", post.PageURL)
	}

	fmt.Fprintf(w, "\nComments (%d):\n", len(activity.Comments))
	if len(activity.Comments) == 0 {
		fmt.Fprintln(w, "  No comments in this period.")
	}
	for i, comment := range activity.Comments {
		if i == maxCommentsShown {
			fmt.Fprintf(w, "  ... and %d more comments\n", len(activity.Comments)-maxCommentsShown)
			break
		}
		var excerpt string
		if comment.Contents != nil {
			excerpt = truncate(comment.Contents.PlaintextDescription, 100)
		}
		fmt.Fprintf(w, "  [%s] On: %s (score: %v)\n", formatDate(comment.PostedAt), comment.PostTitle("Unknown post"), comment.BaseScore)
		fmt.Fprintf(w, "    \"%s...\"\n", excerpt)
		fmt.Fprintf(w, "    %s\n", comment.PageURL)
	}

	fmt.Fprintln(w)
}

func printTopicActivity(w io.Writer, activity *lesswrong.TopicActivity) {
	topic := activity.Topic

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "[%s] Topic: %s\n", forumName(activity.Forum), topic.Name)
	fmt.Fprintf(w, "Total posts: %s\n", formatCount(topic.PostCount))
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nRecent posts (%d):\n", len(activity.Posts))
	if len(activity.Posts) == 0 {
		fmt.Fprintln(w, "  No posts in this period.")
	}
	for _, post := range activity.Posts {
		fmt.Fprintf(w, "  [%s] %s by %s (score: %v)\n", formatDate(post.PostedAt), post.Title, post.AuthorName(), post.BaseScore)
		fmt.Fprintf(w, "    %s\n", post.PageURL)
	}

	fmt.Fprintln(w)
}

func printPost(w io.Writer, post *lesswrong.Post) {
	fmt.Fprintf(w, "\n%s\n", post.Title)
	fmt.Fprintf(w, "By %s | %s\n", post.AuthorName(), formatDate(post.PostedAt))
	fmt.Fprintf(w, "Score: %v | Comments: %v\n", post.BaseScore, post.CommentCount)
	fmt.Fprintf(w, "URL: %s\n", post.PageURL)
	fmt.Fprintf(w, "\n%s\n\n", rule)

	markdown := "(No content)"
	if post.Contents != nil && post.Contents.Markdown != "" {
		markdown = post.Contents.Markdown
	}
	fmt.Fprintln(w, markdown)
}
