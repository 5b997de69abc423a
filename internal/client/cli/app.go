// Package cli implements the interactive blogctl shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/mbelov/microblog/internal/client/api"
	"github.com/mbelov/microblog/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.api.Authenticated()
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
