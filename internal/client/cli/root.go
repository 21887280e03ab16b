package cli

import (
	"bufio"
	"context"
	"strings"

	"authstack/internal/client/session"
)

// prompt reflects the authentication state so the user always knows who
// they are signed in as.
func (a *App) prompt() string {
	if user := a.session.CurrentUser(); user != nil {
		return "authstack (" + user.Email + ")> "
	}
	return "authstack> "
}

func (a *App) printHelp() {
	if a.session.State() == session.StateAuthenticated {
		a.printf("Available commands: whoami, status, logout, help, exit\n")
	} else {
		a.printf("Available commands: register, login, status, help, exit\n")
	}
}

// Root runs the interactive command loop until 'exit' or EOF.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to the authstack CLI (type 'help' for commands)\n")

	scanner := bufio.NewScanner(a.reader)
	for {
		a.printf("%s", a.prompt())
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			a.printHelp()
		case "register":
			if err := a.Register(ctx); err != nil {
				a.printf("error: %v\n", err)
			}
		case "login":
			if err := a.Login(ctx); err != nil {
				a.printf("error: %v\n", err)
			}
		case "logout":
			if err := a.Logout(ctx); err != nil {
				a.printf("error: %v\n", err)
			}
		case "whoami":
			if err := a.Whoami(ctx); err != nil {
				a.printf("error: %v\n", err)
			}
		case "status":
			a.Status(ctx)
		case "exit", "quit":
			a.printf("Bye!\n")
			return
		default:
			a.printf("Unknown command: %s\n", cmd)
		}
	}
}
