package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexflint/forum-publisher/lesswrong"
	"github.com/pkg/browser"
)

type createDraftArgs struct {
	Title    string `arg:"-t,--title,required" help:"post title"`
	Content  string `arg:"-c,--content" help:"post content as markdown"`
	File     string `arg:"--file" help:"read post content from a markdown file"`
	URL      string `arg:"-u,--url" help:"URL for link posts"`
	Question bool   `arg:"-q,--question" help:"create a question post"`
	Open     bool   `arg:"--open" help:"open the new draft in a browser"`
}

// content returns the markdown given on the command line or read from a file
func (args *createDraftArgs) content() (string, error) {
	if args.Content != "" {
		return args.Content, nil
	}
	if args.File != "" {
		buf, err := os.ReadFile(args.File)
		if err != nil {
			return "", fmt.Errorf("error reading %s: %w", args.File, err)
		}
		return string(buf), nil
	}
	return "", errors.New("must specify --content or --file")
}

func (a *app) createDraft(ctx context.Context, args *createDraftArgs) error {
	content, err := args.content()
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	draft, err := client.CreateDraft(ctx, lesswrong.CreatePostRequest{
		Title:    args.Title,
		Content:  content,
		URL:      args.URL,
		Question: args.Question,
	})
	if err != nil {
		return fmt.Errorf("error creating draft: %w", err)
	}

	pageURL := draft.PageURL
	if pageURL == "" {
		pageURL = "N/A"
	}

	fmt.Fprintln(a.out, "Draft created successfully!")
	fmt.Fprintf(a.out, "  Title: %s\n", draft.Title)
	fmt.Fprintf(a.out, "  ID: %s\n", draft.ID)
	fmt.Fprintf(a.out, "  URL: %s\n", pageURL)

	if args.Open && draft.PageURL != "" {
		if err := browser.OpenURL(draft.PageURL); err != nil {
			a.log.Warn().Err(err).Msg("could not open browser")
		}
	}
	return nil
}

type myDraftsArgs struct {
	Limit int  `arg:"-l,--limit" default:"50" help:"maximum number of results"`
	JSON  bool `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) myDrafts(ctx context.Context, args *myDraftsArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	drafts, err := client.MyDrafts(ctx, args.Limit)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, drafts)
	}

	fmt.Fprintf(a.out, "Your drafts (%d):\n\n", len(drafts))
	for _, draft := range drafts {
		var modified string
		if t := draft.LastModified(); t != nil {
			modified = formatDate(*t)
		}
		pageURL := draft.PageURL
		if pageURL == "" {
			pageURL = "N/A"
		}
		fmt.Fprintf(a.out, "  %s\n", draft.Title)
		fmt.Fprintf(a.out, "    Modified: %s\n", modified)
		fmt.Fprintf(a.out, "    URL: %s\n\n", pageURL)
	}
	return nil
}
