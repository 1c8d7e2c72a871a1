package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/dmitrijs2005/hotelbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. The
// new session becomes the current one.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := models.RegisterRequest{Email: email, Password: string(password)}

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Phone", &req.Phone},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	user, err := a.authService.Register(ctx, req)
	if err != nil {
		return err
	}

	a.userName = user.Email
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.FullName())
	return nil
}

// Login prompts for credentials and opens a session. A failed login keeps
// the previous session, if any.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.userName = user.Email
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout ends the session. The local session is forgotten even if the
// server could not be told.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.userName = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>\nphone: %s\nid:    %s\n", user.FullName(), user.Email, user.Phone, user.ID)
	return nil
}

// UpdateProfile asks for new profile values; empty answers keep the
// current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	var (
		upd models.ProfileUpdate
		err error
	)

	fmt.Fprintln(a.out, "Leave a field empty to keep it unchanged")

	if upd.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if upd.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if upd.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}

	if upd == (models.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.authService.UpdateProfile(ctx, upd)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	fmt.Fprintf(a.out, "Profile updated: %s, phone %s\n", user.FullName(), user.Phone)
	return nil
}
