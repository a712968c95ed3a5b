package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/filex"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, name and password and creates an account.
// The password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.client.Register(ctx, email, name, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and keeps the access token in the client.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.client.UserInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d\t%s\t%s\n", u.ID, u.Email, u.Name)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getPassword("Enter current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.client.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated")
	return nil
}

func (a *App) Users(ctx context.Context) error {
	list, err := a.client.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", u.ID, u.Email, u.Name)
	}
	return nil
}

func (a *App) Movies(ctx context.Context) error {
	list, err := a.client.Movies(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No movies")
		return nil
	}

	for _, m := range list {
		cols := []string{fmt.Sprint(m.ID), m.Title, m.ReleaseDate.Format("2006-01-02")}
		if m.Type != nil {
			cols = append(cols, m.Type.Name)
		}
		if m.Rating != nil {
			cols = append(cols, fmt.Sprintf("%.1f", *m.Rating))
		}
		fmt.Fprintln(a.out, strings.Join(cols, "\t"))
	}
	return nil
}

func (a *App) Types(ctx context.Context) error {
	list, err := a.client.MovieTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%d\t%s\n", t.ID, t.Name)
	}
	return nil
}

func (a *App) AddType(ctx context.Context, name string) error {
	t, err := a.client.CreateMovieType(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created movie type %d %s\n", t.ID, t.Name)
	return nil
}

// Poster uploads the image at path as the poster of movie id.
func (a *App) Poster(ctx context.Context, id, path string) error {
	movieID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q", id)
	}

	data, contentType, err := filex.ReadPoster(path)
	if err != nil {
		return err
	}

	url, err := a.client.UploadPoster(ctx, movieID, contentType, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Poster uploaded: %s\n", url)
	return nil
}

// Logout drops the local token. Tokens stay valid on the server until they
// expire.
func (a *App) Logout(ctx context.Context) error {
	a.email = ""
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
