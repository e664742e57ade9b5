package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aitutor/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, string, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}
	if userName == "" {
		return "", "", errors.New("username is required")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)

	return userName, string(password), nil
}

// SignUp creates an account. It does not sign in.
func (a *App) SignUp(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}

	if err := a.api.SignUp(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can signin now")
	return nil
}

// SignIn opens a session and records today's login, as the web app does.
func (a *App) SignIn(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}

	s, err := a.api.SignIn(ctx, userName, password)
	if err != nil {
		return err
	}
	a.userName = s.UserName
	fmt.Fprintf(a.out, "Signed in as %s\n", s.UserName)

	msg, err := a.api.RecordLogin(ctx)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Logout forgets the session.
func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
