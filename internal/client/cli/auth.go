package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/teamboard/internal/client/api"
	"github.com/dmitrijs2005/teamboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the server.
// On success the session is persisted so later runs skip the prompt.
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Println("Login unsuccessful: invalid username or password")
			return nil
		}
		a.reportError(ctx, err)
		return nil
	}

	a.user = &res.User
	if err := a.session.Save(ctx, res.Token, a.user); err != nil {
		log.Printf("cannot save session: %s", err.Error())
	}

	log.Printf("Login successful, welcome %s", a.user.Username)
	return nil
}

// Logout discards the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.dropSession(ctx)
	log.Println("Logged out")
	return nil
}

// Whoami fetches and prints the authenticated user's own profile. The
// profile comes from the server, not the cached copy, so a status changed
// elsewhere shows up here.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return nil
	}

	a.user = u
	fmt.Printf("%s (%s)\n", u.FullName, u.Username)
	fmt.Printf("  email:  %s\n", u.Email)
	fmt.Printf("  status: %s\n", u.CurrentStatus)
	return nil
}
