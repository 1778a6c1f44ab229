package main

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
)

type postArgs struct {
	Slug string `arg:"positional,required" help:"post ID, slug, or URL"`
	JSON bool   `arg:"-j,--json" help:"output as JSON"`
	Open bool   `arg:"--open" help:"also open the post in a browser"`
}

func (a *app) post(ctx context.Context, args *postArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	post, err := client.PostBySlug(ctx, args.Slug)
	if err != nil {
		return err
	}

	if args.JSON {
		err = writeJSON(a.out, post)
	} else {
		printPost(a.out, post)
	}
	if err != nil {
		return err
	}

	if args.Open && post.PageURL != "" {
		if err := browser.OpenURL(post.PageURL); err != nil {
			a.log.Warn().Err(err).Msg("could not open browser")
		}
	}
	return nil
}

type searchArgs struct {
	Query string `arg:"positional,required" help:"search query"`
	Limit int    `arg:"-l,--limit" default:"20" help:"maximum number of results"`
	JSON  bool   `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) search(ctx context.Context, args *searchArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	posts, err := client.SearchPosts(ctx, args.Query, args.Limit)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, posts)
	}

	fmt.Fprintf(a.out, "Posts matching '%s' (%d results):\n\n", args.Query, len(posts))
	for _, post := range posts {
		fmt.Fprintf(a.out, "  [%s] %s\n", formatDate(post.PostedAt), post.Title)
		fmt.Fprintf(a.out, "    By %s | Score: %v\n", post.AuthorName(), post.BaseScore)
		fmt.Fprintf(a.out, "    %s\n\n", post.PageURL)
	}
	return nil
}
