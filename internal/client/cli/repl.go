package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Statuses(ctx context.Context) error
	Roster(ctx context.Context, filter string) error
	SetStatus(ctx context.Context, arg string) error
}

// runREPL starts a simple read-eval-print loop for the team board CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - login            — authenticate
//	  - statuses         — list the status directory
//	  - roster [status]  — show the roster, optionally filtered
//	  - exit | quit      — leave the program
//
//	Logged in, additionally:
//	  - whoami           — show own profile
//	  - set <id>         — change own status
//	  - logout           — discard the stored session
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tb%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, statuses, roster [status], set <id>, logout, exit")
			} else {
				printlnFn("Available commands: login, statuses, roster [status], exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "statuses":
			_ = a.Statuses(ctx)

		case "r", "roster":
			_ = a.Roster(ctx, strings.Join(args, " "))

		case "set":
			if len(args) != 1 {
				printlnFn("Usage: set <status id>")
				continue
			}
			_ = a.SetStatus(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
