// Package authform implements the register, login, and logout flows. Each
// flow validates input locally first, talks to the backend only when the
// input is well-formed, and answers with the path the user should land on
// next.
package authform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"campusvault/internal/client/api"
	"campusvault/internal/logging"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks a local validation failure. The wrapped message is
// the user-facing field hint; no request was sent.
var ErrInvalidInput = errors.New("invalid input")

// Landing pages after each successful flow.
const (
	afterRegisterPath = "/register_result"
	afterLoginPath    = "/index"
	afterLogoutPath   = "/"
)

// RegisterForm is the registration input. Both password fields must match.
type RegisterForm struct {
	Email           string `validate:"required,email"`
	Username        string `validate:"required,min=3,max=32"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// LoginForm is the sign-in input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// fieldMessages maps field+tag to the message shown for that failure. Every
// empty field gets its own message rather than a generic one.
var fieldMessages = map[string]string{
	"Email.required":           "please enter your email",
	"Email.email":              "please enter a valid email address",
	"Username.required":        "please enter a username",
	"Username.min":             "username must be at least 3 characters",
	"Username.max":             "username must be at most 32 characters",
	"Password.required":        "please enter a password",
	"Password.min":             "password must be at least 6 characters",
	"ConfirmPassword.required": "please confirm your password",
	"ConfirmPassword.eqfield":  "passwords do not match",
}

// AuthAPI is the slice of the transport the forms drive.
type AuthAPI interface {
	Register(ctx context.Context, r api.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
}

// SessionWriter persists and clears the signed-in state.
type SessionWriter interface {
	SetSession(ctx context.Context, token, email string) error
	ClearSession(ctx context.Context) error
}

// Forms runs the three auth flows.
type Forms struct {
	api      AuthAPI
	sess     SessionWriter
	out      io.Writer
	log      logging.Logger
	validate *validator.Validate
}

func New(authAPI AuthAPI, sess SessionWriter, out io.Writer, log logging.Logger) *Forms {
	return &Forms{
		api:      authAPI,
		sess:     sess,
		out:      out,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// check runs struct validation and converts the first failure into the
// user-facing message for that field.
func (f *Forms) check(form any) error {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		if msg, ok := fieldMessages[first.Field()+"."+first.Tag()]; ok {
			return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
		}
		return fmt.Errorf("%w: %s is not valid", ErrInvalidInput, first.Field())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// Register validates the form and creates the account. Returns the path to
// land on. Validation failures never reach the network.
func (f *Forms) Register(ctx context.Context, form RegisterForm) (string, error) {
	if err := f.check(form); err != nil {
		fmt.Fprintln(f.out, errText(err))
		return "", err
	}

	req := api.RegisterRequest{
		Email:             form.Email,
		Username:          form.Username,
		Password:          form.Password,
		ConfirmedPassword: form.ConfirmPassword,
	}
	if err := f.api.Register(ctx, req); err != nil {
		f.log.Warn(ctx, "registration failed", "email", form.Email, "err", err)
		fmt.Fprintln(f.out, errText(err))
		return "", err
	}

	fmt.Fprintln(f.out, "Registration submitted.")
	return afterRegisterPath, nil
}

// Login validates, authenticates, and persists the session. The session is
// stored with whatever token the backend returned; a success response with
// an empty token still navigates, so a broken backend is visible on the next
// gated page rather than silently retried here.
func (f *Forms) Login(ctx context.Context, form LoginForm) (string, error) {
	// Both fields empty gets its own combined message; the per-field
	// validator path would only ever report the first field.
	if form.Email == "" && form.Password == "" {
		err := fmt.Errorf("%w: please enter your email and password", ErrInvalidInput)
		fmt.Fprintln(f.out, errText(err))
		return "", err
	}
	if err := f.check(form); err != nil {
		fmt.Fprintln(f.out, errText(err))
		return "", err
	}

	res, err := f.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		f.log.Warn(ctx, "login failed", "email", form.Email, "err", err)
		fmt.Fprintln(f.out, errText(err))
		return "", err
	}

	if err := f.sess.SetSession(ctx, res.Token, form.Email); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	fmt.Fprintf(f.out, "Signed in as %s.\n", form.Email)
	return afterLoginPath, nil
}

// Logout clears the local session. There is no server call; the token simply
// stops being presented.
func (f *Forms) Logout(ctx context.Context) (string, error) {
	if err := f.sess.ClearSession(ctx); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(f.out, "Signed out.")
	return afterLogoutPath, nil
}

// errText strips the sentinel prefix from local validation errors so the
// user sees only the field hint; backend errors pass through as-is.
func errText(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	}
	return err.Error()
}
