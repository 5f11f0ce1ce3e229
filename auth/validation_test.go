package auth_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-frontend/auth"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newValidator() *auth.Validator {
	return auth.NewValidator(auth.WithClock(func() time.Time { return fixedNow }))
}

func validForm() auth.AccountForm {
	return auth.AccountForm{
		Username:        "u",
		Email:           "u@e.com",
		Day:             "1",
		Month:           "1",
		Year:            "2000",
		Password:        "StrongP@ss1",
		ConfirmPassword: "StrongP@ss1",
	}
}

func TestValidator_ValidateRegistration(t *testing.T) {
	v := newValidator()

	t.Run("valid", func(t *testing.T) {
		require.Empty(t, v.ValidateRegistration(validForm()))
	})

	t.Run("empty form reports every field", func(t *testing.T) {
		require.Equal(t, auth.FieldErrors{
			auth.FieldUsername:        "usernameRequired",
			auth.FieldEmail:           "emailInvalid",
			auth.FieldDateOfBirth:     "dobInvalid",
			auth.FieldPassword:        "passwordCriteria",
			auth.FieldConfirmPassword: "confirmPasswordRequired",
		}, v.ValidateRegistration(auth.AccountForm{}))
	})

	t.Run("email independent of username", func(t *testing.T) {
		f := validForm()
		f.Email = "not-an-email"
		require.Equal(t, auth.FieldErrors{auth.FieldEmail: "emailInvalid"}, v.ValidateRegistration(f))
	})

	t.Run("weak password independent of confirm", func(t *testing.T) {
		f := validForm()
		f.Password = "weak"
		f.ConfirmPassword = "weak"
		require.Equal(t, auth.FieldErrors{auth.FieldPassword: "passwordCriteria"}, v.ValidateRegistration(f))
	})

	t.Run("mismatch with strong passwords", func(t *testing.T) {
		f := validForm()
		f.ConfirmPassword = "OtherP@ss2"
		require.Equal(t, auth.FieldErrors{auth.FieldConfirmPassword: "passwordMismatch"}, v.ValidateRegistration(f))
	})

	t.Run("weak and mismatched", func(t *testing.T) {
		f := validForm()
		f.Password = "weak"
		require.Equal(t, auth.FieldErrors{
			auth.FieldPassword:        "passwordCriteria",
			auth.FieldConfirmPassword: "passwordMismatch",
		}, v.ValidateRegistration(f))
	})
}

func TestValidator_Emails(t *testing.T) {
	v := newValidator()

	for _, email := range []string{"", "bad-email", "a@b", "a b@c.d", "@b.c", "a@.c"} {
		t.Run("invalid "+email, func(t *testing.T) {
			require.Equal(t, auth.FieldErrors{auth.FieldEmail: "emailInvalid"}, v.ValidateEmail(email))
		})
	}

	for _, email := range []string{"user@example.com", "a@b.c", "first.last@sub.domain.org"} {
		t.Run("valid "+email, func(t *testing.T) {
			require.Empty(t, v.ValidateEmail(email))
		})
	}
}

func TestValidator_DateOfBirth(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name             string
		day, month, year string
		valid            bool
	}{
		{name: "real past date", day: "29", month: "2", year: "2000", valid: true},
		{name: "today", day: "15", month: "6", year: "2025", valid: true},
		{name: "tomorrow", day: "16", month: "6", year: "2025", valid: false},
		{name: "not a leap year", day: "29", month: "2", year: "2001", valid: false},
		{name: "31 april", day: "31", month: "4", year: "1990", valid: false},
		{name: "month 13", day: "1", month: "13", year: "1990", valid: false},
		{name: "non numeric", day: "one", month: "1", year: "1990", valid: false},
		{name: "missing year", day: "1", month: "1", year: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Day, f.Month, f.Year = tt.day, tt.month, tt.year
			errs := v.ValidateRegistration(f)
			if tt.valid {
				require.Empty(t, errs)
			} else {
				require.Equal(t, auth.FieldErrors{auth.FieldDateOfBirth: "dobInvalid"}, errs)
			}
		})
	}
}

func TestValidator_ValidateAccountUpdate(t *testing.T) {
	v := newValidator()

	t.Run("password optional", func(t *testing.T) {
		f := validForm()
		f.Password, f.ConfirmPassword = "", ""
		require.Empty(t, v.ValidateAccountUpdate(f))
	})

	t.Run("supplied password must be strong", func(t *testing.T) {
		f := validForm()
		f.Password, f.ConfirmPassword = "weak", "weak"
		require.Equal(t, auth.FieldErrors{auth.FieldPassword: "passwordCriteria"}, v.ValidateAccountUpdate(f))
	})

	t.Run("supplied password needs confirmation", func(t *testing.T) {
		f := validForm()
		f.ConfirmPassword = ""
		require.Equal(t, auth.FieldErrors{auth.FieldConfirmPassword: "confirmPasswordRequired"}, v.ValidateAccountUpdate(f))
	})
}

func TestValidator_PasswordReset(t *testing.T) {
	v := newValidator()

	require.Empty(t, v.ValidatePasswordReset("StrongP@ss1", "StrongP@ss1"))
	require.Equal(t, auth.FieldErrors{auth.FieldConfirmPassword: "confirmPasswordRequired"}, v.ValidatePasswordReset("StrongP@ss1", ""))
	require.Equal(t, auth.FieldErrors{auth.FieldConfirmPassword: "passwordMismatch"}, v.ValidatePasswordReset("StrongP@ss1", "StrongP@ss2"))
	require.Equal(t, auth.FieldErrors{auth.FieldPassword: "passwordCriteria"}, v.ValidatePasswordReset("Ab1!ééé", "Ab1!ééé"))
	require.Empty(t, v.ValidatePasswordReset("Ab1!éééé", "Ab1!éééé"))

	require.Equal(t, auth.FieldErrors{auth.FieldOneTimePassword: "otpRequired"}, v.ValidateOTP(""))
	require.Empty(t, v.ValidateOTP("123456"))
}

func TestFieldErrors_Translate(t *testing.T) {
	fe := auth.FieldErrors{auth.FieldEmail: "emailInvalid"}
	translated := fe.Translate(func(key string) string { return "msg:" + key })
	require.Equal(t, auth.FieldErrors{auth.FieldEmail: "msg:emailInvalid"}, translated)
	require.Equal(t, "emailInvalid", fe[auth.FieldEmail])
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "2000-01-02", auth.FormatDate("2", "1", "2000"))
	require.Equal(t, "2000-01-02", auth.FormatDate("02", "01", "2000"))
	require.Equal(t, "", auth.FormatDate("30", "2", "2000"))
}
