package cli

import (
	"context"
	"errors"

	"authstack/internal/client/api"
	"authstack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password (with confirmation) and
// creates a new account. Validation messages from the server are printed
// one per line, matching how the server reports them.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	user, err := a.session.Register(ctx, email, string(password), string(confirmation))
	if err != nil {
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			for _, msg := range ve.Messages {
				a.printf("%s\n", msg)
			}
			return nil
		}
		return err
	}

	a.printf("Signed up as %s\n", user.Email)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			a.printf("%s\n", common.MsgInvalidEmailOrPassword)
			return nil
		}
		return err
	}

	a.printf("Signed in as %s\n", user.Email)
	return nil
}

// Logout revokes the current session and clears the local cache.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.printf("Signed out\n")
	return nil
}

// Whoami prints the signed-in account.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		a.printf("Not signed in\n")
		return nil
	}
	a.printf("Signed in as %s (id %d)\n", user.Email, user.ID)
	return nil
}

// Status prints the session state and server reachability.
func (a *App) Status(ctx context.Context) {
	a.printf("session: %s\n", a.session.State())

	if err := a.api.Ping(ctx); err != nil {
		a.printf("server: %s (unreachable)\n", a.config.ServerBaseURL)
		return
	}
	a.printf("server: %s (ok)\n", a.config.ServerBaseURL)
}
