// Package cli implements the interactive command loop of the authstack
// client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"authstack/internal/client/api"
	"authstack/internal/client/config"
	"authstack/internal/client/session"
	"authstack/internal/client/storage"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Cache
	store   *storage.Storage
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.NewRESTClient(c)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewCache(apiClient, store.Metadata),
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	// Resolve any cached token before the first prompt, so the loop
	// starts with a settled authentication state.
	if err := a.session.Restore(ctx); err != nil {
		a.printf("warning: could not restore session: %v\n", err)
	}

	a.Root(ctx)
}
