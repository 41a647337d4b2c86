package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"nutrition/internal/client"
	"nutrition/internal/guard"
	"nutrition/internal/session"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "nutrictl",
		Usage: "inspect and end a nutrition API session from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "API base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"NUTRITION_API_URL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Supabase access token sent as the sb-access-token cookie",
				EnvVars: []string{"NUTRITION_ACCESS_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "login-url",
				Usage: "where to send the user when no session exists",
				Value: "http://localhost:3000" + guard.DefaultRedirect,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 15 * time.Second,
			},
		},
		Before: func(c *cli.Context) error {
			store := session.NewStore(client.New(c.String("api"), c.String("token")))
			c.Context = session.NewContext(c.Context, store)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "whoami",
				Usage:  "print the signed-in user",
				Action: whoami,
			},
			{
				Name:   "logout",
				Usage:  "sign out and clear the session",
				Action: logout,
			},
		},
	}
}

func whoami(c *cli.Context) error {
	store, err := session.FromContext(c.Context)
	if err != nil {
		return err
	}

	g := guard.New(guard.NavigatorFunc(func(target string) {
		fmt.Fprintf(c.App.ErrWriter, "not signed in; sign in at %s\n", target)
	}), guard.WithRedirect(c.String("login-url")))

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	if err := store.Refresh(ctx); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "session check failed: %v\n", err)
	}

	st := store.State()
	g.Observe(st)
	if g.Render(st) != guard.ViewChildren {
		return cli.Exit("", 1)
	}
	return printUser(c.App.Writer, st.User)
}

func logout(c *cli.Context) error {
	store, err := session.FromContext(c.Context)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	if err := store.SignOut(ctx); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "server sign-out failed, local session cleared: %v\n", err)
	}
	fmt.Fprintln(c.App.Writer, "signed out")
	return nil
}

func printUser(w io.Writer, user *session.UserInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(user)
}
