package upstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: ApprovePath("123"), want: "/account/approve/{id}"},
		{path: ApprovePath("bob"), want: "/account/approve/{id}"},
		{path: RejectPath("alice-smith"), want: "/account/reject/{id}"},
		{path: AccountPath("carol"), want: "/account/{id}"},
		{path: AccountPath("42"), want: "/account/{id}"},
		{path: PathSupportBanner, want: "/support-banner/1"},
		{path: PathAccountDobDay, want: "/account/date-of-birth/day"},
		{path: PathAccountAll, want: "/account/all"},
		{path: PathCSRF, want: "/csrf"},
		{path: "/something/else", want: "other"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, endpointLabel(tt.path))
		})
	}
}

func TestTextPayload(t *testing.T) {
	require.Equal(t, "", textPayload(nil))
	require.Equal(t, "hello", textPayload([]byte("  hello\n")))
	require.Equal(t, "quoted", textPayload([]byte(`"quoted"`)))
	require.Equal(t, "", textPayload([]byte(`[1]`)))
	require.Equal(t, "", textPayload([]byte(`42`)))
}
