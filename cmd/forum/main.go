package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alexflint/forum-publisher/config"
	"github.com/alexflint/forum-publisher/lesswrong"
	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
)

type args struct {
	Forum    string `arg:"-f,--forum,env:FORUM" default:"lesswrong" help:"forum to query: lesswrong (lw), eaforum (ea), alignmentforum (af)"`
	Config   string `arg:"--config,env:FORUM_CONFIG" help:"path to config file"`
	Verbose  bool   `arg:"-v,--verbose" help:"print debug logs"`
	LogLevel string `arg:"--log-level,env:FORUM_LOG_LEVEL" help:"trace, debug, info, warn, or error"`

	ListForums    *listForumsArgs    `arg:"subcommand:list-forums" help:"list available forums"`
	User          *userArgs          `arg:"subcommand:user" help:"get user info"`
	UserActivity  *userActivityArgs  `arg:"subcommand:user-activity" help:"get user activity"`
	Topic         *topicArgs         `arg:"subcommand:topic" help:"get topic info"`
	TopicActivity *topicActivityArgs `arg:"subcommand:topic-activity" help:"get topic activity"`
	SearchTopics  *searchTopicsArgs  `arg:"subcommand:search-topics" help:"search for topics by name"`
	Posts         *postsArgs         `arg:"subcommand:posts" help:"get a user's posts"`
	Comments      *commentsArgs      `arg:"subcommand:comments" help:"get a user's comments"`
	Post          *postArgs          `arg:"subcommand:post" help:"read a single post by ID, slug, or URL"`
	Search        *searchArgs        `arg:"subcommand:search" help:"search posts"`
	CreateDraft   *createDraftArgs   `arg:"subcommand:create-draft" help:"create a draft post (requires auth)"`
	MyDrafts      *myDraftsArgs      `arg:"subcommand:my-drafts" help:"list your draft posts (requires auth)"`
	SetToken      *setTokenArgs      `arg:"subcommand:set-token" help:"store an auth token for a forum"`
	Login         *loginArgs         `arg:"subcommand:login" help:"log in with email and password and store the auth token"`
	Subscribe     *subscribeArgs     `arg:"subcommand:subscribe" help:"add a user or topic to the digest"`
	Unsubscribe   *subscribeArgs     `arg:"subcommand:unsubscribe" help:"remove a user or topic from the digest"`
	Digest        *digestArgs        `arg:"subcommand:digest" help:"write a digest of recent activity for all subscriptions"`
}

func (args) Description() string {
	return "Command line client for LessWrong, the EA Forum, and the Alignment Forum"
}

// app holds what every command needs
type app struct {
	cfg   *config.Config
	forum string
	log   zerolog.Logger
	out   io.Writer
	opts  []lesswrong.Option // extra client options
}

func (a *app) client() (*lesswrong.Client, error) {
	return a.clientFor(a.forum)
}

func (a *app) clientFor(forum string) (*lesswrong.Client, error) {
	opts := append([]lesswrong.Option{lesswrong.WithLogger(a.log)}, a.opts...)
	return lesswrong.NewClient(forum, a.cfg, opts...)
}

func newLogger(w io.Writer, verbose bool, level string) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func run(ctx context.Context, args *args, p *arg.Parser) error {
	logger, err := newLogger(os.Stderr, args.Verbose, args.LogLevel)
	if err != nil {
		return err
	}

	path := args.Config
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	config.ApplyEnvOverrides(cfg)
	logger.Debug().Str("path", cfg.Path()).Msg("loaded config")

	a := app{
		cfg:   cfg,
		forum: args.Forum,
		log:   logger,
		out:   os.Stdout,
	}

	switch {
	case args.ListForums != nil:
		return a.listForums(args.ListForums)
	case args.User != nil:
		return a.user(ctx, args.User)
	case args.UserActivity != nil:
		return a.userActivity(ctx, args.UserActivity)
	case args.Topic != nil:
		return a.topic(ctx, args.Topic)
	case args.TopicActivity != nil:
		return a.topicActivity(ctx, args.TopicActivity)
	case args.SearchTopics != nil:
		return a.searchTopics(ctx, args.SearchTopics)
	case args.Posts != nil:
		return a.posts(ctx, args.Posts)
	case args.Comments != nil:
		return a.comments(ctx, args.Comments)
	case args.Post != nil:
		return a.post(ctx, args.Post)
	case args.Search != nil:
		return a.search(ctx, args.Search)
	case args.CreateDraft != nil:
		return a.createDraft(ctx, args.CreateDraft)
	case args.MyDrafts != nil:
		return a.myDrafts(ctx, args.MyDrafts)
	case args.SetToken != nil:
		return a.setToken(args.SetToken)
	case args.Login != nil:
		return a.login(ctx, args.Login)
	case args.Subscribe != nil:
		return a.subscribe(args.Subscribe)
	case args.Unsubscribe != nil:
		return a.unsubscribe(args.Unsubscribe)
	case args.Digest != nil:
		return a.digest(ctx, args.Digest)
	default:
		p.WriteHelp(os.Stdout)
		return errors.New("you must specify a command")
	}
}

// printError reports a command failure, marking transport errors so they
// are not mistaken for problems with the command line
func printError(w io.Writer, err error) {
	var httpErr *lesswrong.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Fprintln(w, "HTTP error:", err)
		return
	}
	fmt.Fprintln(w, "error:", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// a .env file may set FORUM, FORUM_CONFIG, or tokens, so it is read
	// before the command line
	startup, _ := newLogger(os.Stderr, false, "")
	config.LoadEnv(startup)

	var args args
	p := arg.MustParse(&args)

	err := run(ctx, &args, p)
	if err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
