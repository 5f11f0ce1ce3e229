package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
)

type CSRFResponse struct {
	CSRFToken string `json:"csrfToken" validate:"required"`
}

// Banner is the support banner shown to chat users.
type Banner struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type BannerUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List is an array of JSON objects passed through to the browser untouched.
type List []json.RawMessage

// Validate checks that every element is a JSON object.
func (l List) Validate() error {
	for i, item := range l {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return apperrors.Wrapf(apperrors.ErrInvalidResponse, "list element %d is not an object", i)
		}
	}
	return nil
}

// Stats is an opaque statistics payload.
type Stats json.RawMessage

func (s Stats) Validate() error {
	if len(bytes.TrimSpace(s)) == 0 || !json.Valid(s) {
		return apperrors.Wrapf(apperrors.ErrInvalidResponse, "statistics payload is not valid JSON")
	}
	return nil
}

func (s Stats) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(s).MarshalJSON()
}

func (s *Stats) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("upstream.Stats: UnmarshalJSON on nil pointer")
	}
	*s = append((*s)[0:0], data...)
	return nil
}

// Login is the body of the admin login call.
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DateOfBirth     string `json:"dateOfBirth"`
}

type AccountUpdate struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	DateOfBirth     string `json:"dateOfBirth"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ResetEmail struct {
	Email string `json:"email"`
}

type ResetOTP struct {
	Email           string `json:"email"`
	OneTimePassword string `json:"oneTimePassword"`
}

type ResetPassword struct {
	Email           string `json:"email"`
	OneTimePassword string `json:"oneTimePassword"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
