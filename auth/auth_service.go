package auth

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/upstream"
)

// Service relays the sign-in, registration and password reset flows to the account service.
type Service struct {
	client *upstream.Client
}

func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// LoginResult is the upstream session established by a successful login.
type LoginResult struct {
	SessionCookie string
	CSRFToken     string
}

// Login signs the administrator in upstream and returns the session the account service issued.
func (s *Service) Login(ctx context.Context, username, password, lang string) (LoginResult, error) {
	conn, err := s.client.Open("", lang)
	if err != nil {
		return LoginResult{}, err
	}

	res, err := conn.Relay(ctx, http.MethodPost, upstream.PathLogin, upstream.Login{
		Username: username,
		Password: password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if res.Cookies == "" {
		return LoginResult{}, NoUpstreamSessionErr
	}

	return LoginResult{SessionCookie: res.Cookies, CSRFToken: res.CSRFToken}, nil
}

// Register creates a new administrator account awaiting approval.
func (s *Service) Register(ctx context.Context, f AccountForm, lang string) error {
	return s.relay(ctx, lang, upstream.PathRegisterAdmin, upstream.Registration{
		Username:        f.Username,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		DateOfBirth:     f.DateOfBirth(),
	})
}

// RequestPasswordReset asks the account service to email a one-time passcode.
func (s *Service) RequestPasswordReset(ctx context.Context, email, lang string) error {
	return s.relay(ctx, lang, upstream.PathForgotEnterEmail, upstream.ResetEmail{Email: email})
}

func (s *Service) ResendOTP(ctx context.Context, email, lang string) error {
	return s.relay(ctx, lang, upstream.PathForgotResendOTP, upstream.ResetEmail{Email: email})
}

func (s *Service) VerifyOTP(ctx context.Context, email, otp, lang string) error {
	return s.relay(ctx, lang, upstream.PathForgotVerifyOTP, upstream.ResetOTP{
		Email:           email,
		OneTimePassword: otp,
	})
}

func (s *Service) ResetPassword(ctx context.Context, email, otp, password, confirmPassword, lang string) error {
	return s.relay(ctx, lang, upstream.PathForgotResetPassword, upstream.ResetPassword{
		Email:           email,
		OneTimePassword: otp,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
}

func (s *Service) relay(ctx context.Context, lang, path string, body any) error {
	conn, err := s.client.Open("", lang)
	if err != nil {
		return err
	}
	_, err = conn.Relay(ctx, http.MethodPost, path, body)
	return err
}
