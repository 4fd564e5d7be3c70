// Package auth is a stand-in identity flow. Requests are validated field by
// field, then every valid request succeeds after a short simulated delay.
// No credentials are checked or stored.
package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/parser"
)

const (
	minNameLength     = 2
	minPasswordLength = 8
)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, fe[f])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

type LoginRequest struct {
	Email    string
	Password string
}

type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

type ForgotPasswordRequest struct {
	Email string
}

func (r LoginRequest) Validate() error {
	fe := FieldErrors{}
	checkEmail(fe, r.Email)
	checkPassword(fe, r.Password)
	return fe.orNil()
}

func (r SignupRequest) Validate() error {
	fe := FieldErrors{}
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < minNameLength {
		fe["name"] = "Name must be at least 2 characters"
	}
	checkEmail(fe, r.Email)
	checkPassword(fe, r.Password)
	if r.Password != r.ConfirmPassword {
		fe["confirmPassword"] = "Passwords do not match"
	}
	if !r.AcceptTerms {
		fe["acceptTerms"] = "You must accept the terms and conditions"
	}
	return fe.orNil()
}

func (r ForgotPasswordRequest) Validate() error {
	fe := FieldErrors{}
	checkEmail(fe, r.Email)
	return fe.orNil()
}

func checkEmail(fe FieldErrors, email string) {
	if !parser.IsValidEmail(email) {
		fe["email"] = "Please enter a valid email address"
	}
}

func checkPassword(fe FieldErrors, password string) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		fe["password"] = "Password must be at least 8 characters"
	}
}

// Result is what a successful request hands back to the caller.
type Result struct {
	Token    string
	Redirect string
	Message  string
}

// Service simulates a remote identity provider.
type Service struct {
	Delay time.Duration
}

func NewService(delay time.Duration) *Service {
	if delay < 0 {
		delay = config.AuthDelay
	}
	return &Service{Delay: delay}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	return Result{Token: uuid.NewString(), Redirect: "/", Message: "Welcome back"}, nil
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	return Result{
		Token:    uuid.NewString(),
		Redirect: "/",
		Message:  fmt.Sprintf("Account created for %s", strings.TrimSpace(req.Name)),
	}, nil
}

// ForgotPassword pretends to send a reset link; there is no redirect.
func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Reset link sent to %s", strings.TrimSpace(req.Email))}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
