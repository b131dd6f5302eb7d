// Package cli implements the interactive team board client: a small REPL
// that logs in against the server, shows the roster and the status
// directory, and lets the user change their own status.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/teamboard/internal/client/api"
	"github.com/dmitrijs2005/teamboard/internal/client/config"
	"github.com/dmitrijs2005/teamboard/internal/client/session"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Store
	db      *sql.DB
	user    *api.User
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewClient(c.ServerAddr, c.RequestTimeout)

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewStore(db),
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.restoreSession(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// restoreSession picks up the login state of a previous run, if any.
// A stale token is only discovered on the first authenticated call.
func (a *App) restoreSession(ctx context.Context) {
	token, user, err := a.session.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("cannot restore session: %s", err.Error())
		}
		return
	}

	a.api.SetToken(token)
	a.user = user
	log.Printf("Restored session for %s", user.Username)
}

// dropSession clears both the in-memory and the stored login state.
func (a *App) dropSession(ctx context.Context) {
	if err := a.session.Clear(ctx); err != nil {
		log.Printf("cannot clear session: %s", err.Error())
	}
	a.api.SetToken("")
	a.user = nil
}

// reportError prints err to the user. An unauthorized error additionally
// discards the session, so the next command prompts for a fresh login.
func (a *App) reportError(ctx context.Context, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		log.Println("Session expired, please log in again")
		a.dropSession(ctx)
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		log.Println("Server unavailable, try again later")
		return
	}
	log.Println(err.Error())
}
