package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type setTokenArgs struct {
	Token string `arg:"-t,--token,required" help:"auth token, from the loginToken cookie in your browser"`
}

func (a *app) setToken(args *setTokenArgs) error {
	return a.saveToken(strings.TrimSpace(args.Token))
}

// saveToken stores a token for the selected forum and rewrites the config
func (a *app) saveToken(token string) error {
	key, err := a.cfg.SetToken(a.forum, token)
	if err != nil {
		return err
	}

	if err := a.cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Auth token saved for %s\n", key)
	fmt.Fprintf(a.out, "Token stored in: %s\n", a.cfg.Path())
	return nil
}

type loginArgs struct {
	Email    string `arg:"-e,--email,required" help:"account email address"`
	Password string `arg:"env:FORUM_PASSWORD" help:"account password; prompted for if not given"`
}

func (a *app) login(ctx context.Context, args *loginArgs) error {
	password := args.Password
	if password == "" {
		fmt.Fprint(os.Stderr, "Enter password: ")
		buf, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		password = string(buf)
	}
	if password == "" {
		return errors.New("a password is required")
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	auth, err := client.Login(ctx, args.Email, password)
	if err != nil {
		return err
	}

	a.log.Debug().Str("user", auth.UserID).Msg("logged in")
	return a.saveToken(auth.Token)
}
