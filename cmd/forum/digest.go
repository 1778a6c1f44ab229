package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexflint/forum-publisher/config"
	"github.com/alexflint/forum-publisher/digest"
	"github.com/alexflint/forum-publisher/forums"
)

type subscribeArgs struct {
	User  string `arg:"--user" help:"user slug"`
	Topic string `arg:"--topic" help:"topic slug"`
}

// subscription builds the subscription described by args on the selected forum
func (a *app) subscription(args *subscribeArgs) (config.Subscription, error) {
	if (args.User == "") == (args.Topic == "") {
		return config.Subscription{}, errors.New("specify exactly one of --user or --topic")
	}

	key, err := forums.Resolve(a.forum)
	if err != nil {
		return config.Subscription{}, err
	}

	return config.Subscription{Forum: key, User: args.User, Topic: args.Topic}, nil
}

func (a *app) subscribe(args *subscribeArgs) error {
	sub, err := a.subscription(args)
	if err != nil {
		return err
	}

	if !a.cfg.Subscribe(sub) {
		fmt.Fprintf(a.out, "Already subscribed to %s\n", sub)
		return nil
	}

	if err := a.cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Subscribed to %s\n", sub)
	return nil
}

func (a *app) unsubscribe(args *subscribeArgs) error {
	sub, err := a.subscription(args)
	if err != nil {
		return err
	}

	if !a.cfg.Unsubscribe(sub) {
		return fmt.Errorf("not subscribed to %s", sub)
	}

	if err := a.cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unsubscribed from %s\n", sub)
	return nil
}

type digestArgs struct {
	Days      int    `arg:"-d,--days" help:"number of days to look back (default: digest_days from the config)"`
	OutputDir string `arg:"-o,--output-dir" help:"directory to write to (default: output_dir from the config)"`
	Stdout    bool   `arg:"--stdout" help:"print the digest instead of writing a file"`
}

func (a *app) digest(ctx context.Context, args *digestArgs) error {
	days := args.Days
	if days <= 0 {
		days = a.cfg.DigestDays
	}
	dir := args.OutputDir
	if dir == "" {
		dir = a.cfg.OutputDir
	}

	b := digest.Builder{
		ClientFor: func(forum string) (digest.Fetcher, error) {
			client, err := a.clientFor(forum)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Log: a.log,
	}

	d, err := b.Build(ctx, a.cfg.Subscriptions, days)
	if err != nil {
		return err
	}

	if n := d.Failed(); n > 0 {
		a.log.Warn().Int("failed", n).Int("total", len(d.Entries)).Msg("some subscriptions could not be fetched")
	}

	if args.Stdout {
		return digest.Render(a.out, d)
	}

	path, err := digest.WriteFile(d, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "wrote digest to %s\n", path)
	return nil
}
