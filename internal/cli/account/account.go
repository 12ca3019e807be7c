package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/thirtyday/internal/cli"
	apperrors "github.com/julianstephens/thirtyday/internal/errors"
)

// promptPassword asks for a password without echoing it.
func promptPassword(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

type SignInCmd struct {
	Email      string `arg:"" help:"Account email."`
	Password   string `help:"Account password. Prompted for when omitted." env:"THIRTYDAY_PASSWORD"`
	RememberMe bool   `help:"Keep the session for longer."`
}

func (c *SignInCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Password"); err != nil {
			return err
		}
	}

	if err := ctx.Auth.SignIn(context.Background(), c.Email, password, c.RememberMe); err != nil {
		return fmt.Errorf("sign in failed: %s", apperrors.UserMessage(err))
	}
	ctx.Printf("✓ Signed in as %s\n", displayUser(ctx))
	return nil
}

type SignUpCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password. Prompted for when omitted." env:"THIRTYDAY_PASSWORD"`
	Name     string `help:"Display name."`
}

func (c *SignUpCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Choose a password"); err != nil {
			return err
		}
	}

	var name *string
	if c.Name != "" {
		name = &c.Name
	}
	if err := ctx.Auth.SignUp(context.Background(), c.Email, password, name); err != nil {
		return fmt.Errorf("sign up failed: %s", apperrors.UserMessage(err))
	}
	ctx.Printf("✓ Account created, signed in as %s\n", displayUser(ctx))
	return nil
}

type SignOutCmd struct{}

func (c *SignOutCmd) Run(ctx *cli.Context) error {
	err := ctx.Auth.SignOut(context.Background())
	ctx.Println("✓ Signed out")
	if err != nil {
		ctx.Printf("  (the server could not be reached: %s)\n", apperrors.UserMessage(err))
	}
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	err := ctx.Auth.CheckStatus(context.Background())
	state := ctx.Auth.State()

	ctx.Printf("Server: %s\n", ctx.Config.APIURL)
	switch {
	case state.IsAuthenticated:
		ctx.Printf("✓ Signed in as %s\n", displayUser(ctx))
	case err != nil:
		ctx.Printf("ℹ Not signed in (%s)\n", apperrors.UserMessage(err))
	default:
		ctx.Println("ℹ Not signed in")
	}
	return nil
}

func displayUser(ctx *cli.Context) string {
	user := ctx.Auth.State().User
	if user == nil {
		return "unknown user"
	}
	if user.Name != nil && *user.Name != "" {
		return fmt.Sprintf("%s <%s>", *user.Name, user.Email)
	}
	return user.Email
}
