// Package i18n holds the console's translated strings and resolves the locale of a request.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locale identifies a supported language.
type Locale string

const (
	English Locale = "en"
	Welsh   Locale = "cy"

	DefaultLocale = English
)

// Supported lists every locale with a string table.
var Supported = []Locale{English, Welsh}

//go:embed locales/*.yaml
var localeFiles embed.FS

// ParseLocale returns the matching supported locale, or false when lang is not one.
func ParseLocale(lang string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(lang)))
	for _, s := range Supported {
		if l == s {
			return l, true
		}
	}
	return "", false
}

// Bundle maps locale -> message key -> translated text.
type Bundle struct {
	messages map[Locale]map[string]string
}

// Load parses the embedded string tables.
func Load() (*Bundle, error) {
	return LoadFS(localeFiles, "locales")
}

// LoadFS parses one <locale>.yaml file per supported locale from dir in fsys.
func LoadFS(fsys fs.FS, dir string) (*Bundle, error) {
	b := &Bundle{messages: make(map[Locale]map[string]string, len(Supported))}
	for _, l := range Supported {
		data, err := fs.ReadFile(fsys, path.Join(dir, string(l)+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("[i18n LoadFS] reading %s table: %w", l, err)
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("[i18n LoadFS] parsing %s table: %w", l, err)
		}
		b.messages[l] = table
	}
	return b, nil
}

// MustLoad is Load for program start-up, where a broken table is fatal.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// T translates key into locale, falling back to English and finally to the key itself.
func (b *Bundle) T(locale Locale, key string) string {
	if msg, ok := b.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := b.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Has reports whether key exists in the locale's own table.
func (b *Bundle) Has(locale Locale, key string) bool {
	_, ok := b.messages[locale][key]
	return ok
}

type contextKey struct{}

// WithLocale stores the request locale in ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the locale stored in ctx, or the default locale.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(contextKey{}).(Locale); ok {
		return l
	}
	return DefaultLocale
}
