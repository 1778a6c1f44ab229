package main

import (
	"context"
	"fmt"

	"github.com/alexflint/forum-publisher/lesswrong"
)

type userArgs struct {
	Slug string `arg:"positional,required" help:"user slug or username"`
}

func (a *app) user(ctx context.Context, args *userArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	user, err := client.UserBySlug(ctx, args.Slug)
	if err != nil {
		return err
	}

	return writeJSON(a.out, user)
}

type userActivityArgs struct {
	Slug string `arg:"positional,required" help:"user slug or username"`
	Days int    `arg:"-d,--days" default:"7" help:"number of days to look back"`
	JSON bool   `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) userActivity(ctx context.Context, args *userActivityArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	activity, err := client.UserActivity(ctx, args.Slug, args.Days)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, activity)
	}
	printUserActivity(a.out, activity)
	return nil
}

type postsArgs struct {
	Slug string `arg:"positional,required" help:"user slug or username"`
	Days int    `arg:"-d,--days" default:"7" help:"number of days to look back"`
	JSON bool   `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) posts(ctx context.Context, args *postsArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	user, err := client.UserBySlug(ctx, args.Slug)
	if err != nil {
		return err
	}

	posts, err := client.UserPosts(ctx, user.ID, client.Cutoff(args.Days), lesswrong.UserPostsLimit)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, posts)
	}

	fmt.Fprintf(a.out, "Posts by %s (last %d days):\n", args.Slug, args.Days)
	for _, post := range posts {
		fmt.Fprintf(a.out, "  - %s\n", post.Title)
		fmt.Fprintf(a.out, "    %s\n", post.PageURL)
	}
	return nil
}

type commentsArgs struct {
	Slug string `arg:"positional,required" help:"user slug or username"`
	Days int    `arg:"-d,--days" default:"7" help:"number of days to look back"`
	JSON bool   `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) comments(ctx context.Context, args *commentsArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	user, err := client.UserBySlug(ctx, args.Slug)
	if err != nil {
		return err
	}

	comments, err := client.UserComments(ctx, user.ID, client.Cutoff(args.Days), lesswrong.UserCommentsLimit)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, comments)
	}

	fmt.Fprintf(a.out, "Comments by %s (last %d days): %d\n", args.Slug, args.Days, len(comments))
	for i, comment := range comments {
		if i == maxCommentsShown {
			break
		}
		fmt.Fprintf(a.out, "  - On: %s\n", comment.PostTitle("Unknown"))
		fmt.Fprintf(a.out, "    %s\n", comment.PageURL)
	}
	return nil
}
