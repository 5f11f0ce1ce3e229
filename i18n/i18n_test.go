package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jrsteele09/go-admin-frontend/i18n"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	for input, want := range map[string]i18n.Locale{"en": i18n.English, "CY": i18n.Welsh, " cy ": i18n.Welsh} {
		got, ok := i18n.ParseLocale(input)
		require.True(t, ok, input)
		require.Equal(t, want, got)
	}

	for _, input := range []string{"", "fr", "english"} {
		_, ok := i18n.ParseLocale(input)
		require.False(t, ok, input)
	}
}

func TestBundle_EmbeddedTablesAreComplete(t *testing.T) {
	b, err := i18n.Load()
	require.NoError(t, err)

	for _, key := range []string{"actionAccept", "actionReject", "actionDelete", "emailInvalid", "loginInvalidCredentials"} {
		require.True(t, b.Has(i18n.English, key), key)
		require.True(t, b.Has(i18n.Welsh, key), key)
	}
	require.Equal(t, "Accept", b.T(i18n.English, "actionAccept"))
	require.Equal(t, "Derbyn", b.T(i18n.Welsh, "actionAccept"))
}

func TestBundle_Fallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"t/en.yaml": {Data: []byte("greeting: Hello\nfarewell: Goodbye\n")},
		"t/cy.yaml": {Data: []byte("greeting: Shwmae\n")},
	}
	b, err := i18n.LoadFS(fsys, "t")
	require.NoError(t, err)

	require.Equal(t, "Shwmae", b.T(i18n.Welsh, "greeting"))
	require.Equal(t, "Goodbye", b.T(i18n.Welsh, "farewell"))
	require.Equal(t, "unknownKey", b.T(i18n.Welsh, "unknownKey"))
}

func TestLoadFS_MissingTable(t *testing.T) {
	fsys := fstest.MapFS{"t/en.yaml": {Data: []byte("a: b\n")}}
	_, err := i18n.LoadFS(fsys, "t")
	require.Error(t, err)
}

func TestLocaleContext(t *testing.T) {
	require.Equal(t, i18n.English, i18n.FromContext(context.Background()))
	ctx := i18n.WithLocale(context.Background(), i18n.Welsh)
	require.Equal(t, i18n.Welsh, i18n.FromContext(ctx))
}
