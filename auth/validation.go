package auth

import (
	"errors"
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-admin-frontend/users"
)

// Logical form fields errors are reported against.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldDateOfBirth     = "dateOfBirth"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldOneTimePassword = "oneTimePassword"
	FieldGeneral         = "general"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messageKeys maps a failing field and rule to its translation key.
var messageKeys = map[string]string{
	FieldUsername + ".required":             "usernameRequired",
	FieldEmail + ".adminemail":              "emailInvalid",
	FieldDateOfBirth + ".pastdate":          "dobInvalid",
	FieldPassword + ".strongpassword":       "passwordCriteria",
	FieldConfirmPassword + ".required":      "confirmPasswordRequired",
	FieldConfirmPassword + ".required_with": "confirmPasswordRequired",
	FieldConfirmPassword + ".eqfield":       "passwordMismatch",
	FieldOneTimePassword + ".required":      "otpRequired",
}

// FieldErrors maps a logical field to the message shown next to it. At most one message per field.
type FieldErrors map[string]string

// Translate returns a copy with every message passed through t.
func (fe FieldErrors) Translate(t func(key string) string) FieldErrors {
	out := make(FieldErrors, len(fe))
	for field, key := range fe {
		out[field] = t(key)
	}
	return out
}

type registration struct {
	Username        string `field:"username" validate:"required"`
	Email           string `field:"email" validate:"adminemail"`
	DateOfBirth     string `field:"dateOfBirth" validate:"pastdate"`
	Password        string `field:"password" validate:"strongpassword"`
	ConfirmPassword string `field:"confirmPassword" validate:"required,eqfield=Password"`
}

type accountUpdate struct {
	Username        string `field:"username" validate:"required"`
	Email           string `field:"email" validate:"adminemail"`
	DateOfBirth     string `field:"dateOfBirth" validate:"pastdate"`
	Password        string `field:"password" validate:"omitempty,strongpassword"`
	ConfirmPassword string `field:"confirmPassword" validate:"required_with=Password,eqfield=Password"`
}

type resetEmail struct {
	Email string `field:"email" validate:"adminemail"`
}

type resetOTP struct {
	OneTimePassword string `field:"oneTimePassword" validate:"required"`
}

type resetPassword struct {
	Password        string `field:"password" validate:"strongpassword"`
	ConfirmPassword string `field:"confirmPassword" validate:"required,eqfield=Password"`
}

// Validator checks form input and reports failures as translation keys per field.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

type ValidatorOption func(*Validator)

// WithClock sets the time dates of birth are compared against.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a new Validator instance
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	_ = v.validate.RegisterValidation("adminemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return users.ValidatePasswordStrength(fl.Field().String()) == nil
	})
	_ = v.validate.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil && t.Before(v.now())
	})
	return v
}

// ValidateRegistration checks every registration field independently.
func (v *Validator) ValidateRegistration(f AccountForm) FieldErrors {
	return v.check(registration{
		Username:        f.Username,
		Email:           f.Email,
		DateOfBirth:     f.DateOfBirth(),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	})
}

// ValidateAccountUpdate checks an account update; password rules only apply when a new password
// is supplied.
func (v *Validator) ValidateAccountUpdate(f AccountForm) FieldErrors {
	return v.check(accountUpdate{
		Username:        f.Username,
		Email:           f.Email,
		DateOfBirth:     f.DateOfBirth(),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	})
}

func (v *Validator) ValidateEmail(email string) FieldErrors {
	return v.check(resetEmail{Email: email})
}

func (v *Validator) ValidateOTP(otp string) FieldErrors {
	return v.check(resetOTP{OneTimePassword: otp})
}

func (v *Validator) ValidatePasswordReset(password, confirmPassword string) FieldErrors {
	return v.check(resetPassword{Password: password, ConfirmPassword: confirmPassword})
}

func (v *Validator) check(form any) FieldErrors {
	fieldErrors := FieldErrors{}

	err := v.validate.Struct(form)
	if err == nil {
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors[FieldGeneral] = "validationError"
		return fieldErrors
	}
	for _, fe := range verrs {
		if _, seen := fieldErrors[fe.Field()]; seen {
			continue
		}
		key, ok := messageKeys[fe.Field()+"."+fe.Tag()]
		if !ok {
			key = "validationError"
		}
		fieldErrors[fe.Field()] = key
	}
	return fieldErrors
}
