package users_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-frontend/users"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "strong", password: "StrongP@ss1", valid: true},
		{name: "backslash symbol", password: `Abcdefg1\`, valid: true},
		{name: "backtick symbol", password: "Abcdefg1`", valid: true},
		{name: "too short", password: "Ab1!", valid: false},
		{name: "seven multi-byte characters", password: "Ab1!ééé", valid: false},
		{name: "eight multi-byte characters", password: "Ab1!éééé", valid: true},
		{name: "no upper", password: "weakp@ss1", valid: false},
		{name: "no lower", password: "WEAKP@SS1", valid: false},
		{name: "no digit", password: "WeakP@sss", valid: false},
		{name: "no symbol", password: "WeakPass1", valid: false},
		{name: "unsupported symbol", password: "WeakPass1£", valid: false},
		{name: "empty", password: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := users.ValidatePasswordStrength(tt.password)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
