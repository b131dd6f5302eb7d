package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.user.Username)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the team board CLI (type 'help' for commands)")

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
