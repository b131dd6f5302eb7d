package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Statuses prints the status directory with ids usable by "set".
func (a *App) Statuses(ctx context.Context) error {
	list, err := a.api.Statuses(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return nil
	}

	for _, st := range list {
		fmt.Printf("%3d  %s\n", st.ID, st.Name)
	}
	return nil
}

// Roster prints the team roster. A non-empty filter keeps only users whose
// current status equals it exactly.
func (a *App) Roster(ctx context.Context, filter string) error {
	list, err := a.api.Users(ctx, filter)
	if err != nil {
		a.reportError(ctx, err)
		return nil
	}

	if len(list) == 0 {
		fmt.Println("Nobody matches")
		return nil
	}

	for _, u := range list {
		marker := " "
		if a.user != nil && u.ID == a.user.ID {
			marker = "*"
		}
		fmt.Printf("%s %-15s %-25s %s\n", marker, u.Username, u.FullName, u.CurrentStatus)
	}
	return nil
}

// SetStatus changes the logged-in user's status to the given status id
// and prints the server's confirmation.
func (a *App) SetStatus(ctx context.Context, arg string) error {
	statusID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || statusID <= 0 {
		fmt.Println("Usage: set <status id> (see 'statuses' for ids)")
		return nil
	}

	res, err := a.api.UpdateMyStatus(ctx, statusID)
	if err != nil {
		a.reportError(ctx, err)
		return nil
	}

	if a.user != nil {
		a.user.CurrentStatus = res.User.CurrentStatus
		a.user.StatusID = res.User.StatusID
	}

	fmt.Println(res.Message)

	// freshness is fetch-after-mutation: show the board as teammates now see it
	return a.Roster(ctx, "")
}
