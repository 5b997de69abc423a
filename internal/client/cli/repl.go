package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the blogctl CLI.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Listing and showing posts work without a login; everything that
// writes requires one. Errors returned by command handlers are ignored
// here; handlers print their own errors. This keeps the loop resilient
// and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("blog> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, add, edit, delete, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, (l)ist, show, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command: " + cmd + " (type help)")
		}
	}
}
