package main

import (
	"context"
	"fmt"
)

type topicArgs struct {
	Slug string `arg:"positional,required" help:"topic slug"`
}

func (a *app) topic(ctx context.Context, args *topicArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	tag, err := client.TagBySlug(ctx, args.Slug)
	if err != nil {
		return err
	}

	return writeJSON(a.out, tag)
}

type topicActivityArgs struct {
	Slug string `arg:"positional,required" help:"topic slug"`
	Days int    `arg:"-d,--days" default:"7" help:"number of days to look back"`
	JSON bool   `arg:"-j,--json" help:"output as JSON"`
}

func (a *app) topicActivity(ctx context.Context, args *topicActivityArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	activity, err := client.TopicActivity(ctx, args.Slug, args.Days)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(a.out, activity)
	}
	printTopicActivity(a.out, activity)
	return nil
}

type searchTopicsArgs struct {
	Query string `arg:"positional,required" help:"text to look for in topic names"`
	Limit int    `arg:"-l,--limit" default:"10" help:"maximum number of results"`
}

func (a *app) searchTopics(ctx context.Context, args *searchTopicsArgs) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	tags, err := client.SearchTags(ctx, args.Query, args.Limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Topics matching '%s':\n", args.Query)
	for _, tag := range tags {
		fmt.Fprintf(a.out, "  %s (slug: %s, posts: %s)\n", tag.Name, tag.Slug, formatCount(tag.PostCount))
	}
	return nil
}
