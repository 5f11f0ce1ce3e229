package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/auth"
	"github.com/jrsteele09/go-admin-frontend/i18n"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Page views
const (
	ViewLogin           = "login"
	ViewRegister        = "register"
	ViewForgotPassword  = "forgot-password"
	ViewVerifyOTP       = "verify-otp"
	ViewResetPassword   = "reset-password"
	ViewAdmin           = "admin"
	ViewAccount         = "account"
	ViewAccountUpdate   = "update"
	ViewAccountRequests = "account-requests"
	ViewManageAccounts  = "manage-accounts"
	ViewUpdateBanner    = "update-banner"
	ViewNotFound        = "not-found"
	ViewError           = "error"
)

var views = []string{
	ViewLogin,
	ViewRegister,
	ViewForgotPassword,
	ViewVerifyOTP,
	ViewResetPassword,
	ViewAdmin,
	ViewAccount,
	ViewAccountUpdate,
	ViewAccountRequests,
	ViewManageAccounts,
	ViewUpdateBanner,
	ViewNotFound,
	ViewError,
}

// ViewData is the data a page is rendered with.
type ViewData map[string]any

// Renderer writes a named page view with status.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, view string, data ViewData) error
}

// TemplateRenderer renders the embedded html/template pages, each composed with layout.html.
type TemplateRenderer struct {
	pages   map[string]*template.Template
	bundle  *i18n.Bundle
	appName string
}

var templateFuncs = template.FuncMap{
	"fieldError": func(fieldErrors any, field string) string {
		if fe, ok := fieldErrors.(auth.FieldErrors); ok {
			return fe[field]
		}
		return ""
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// NewTemplateRenderer parses every page view once.
func NewTemplateRenderer(bundle *i18n.Bundle, appName string) (*TemplateRenderer, error) {
	fsys := TemplateFilesFS()
	pages := make(map[string]*template.Template, len(views))
	for _, view := range views {
		tmpl, err := template.New(view).Funcs(templateFuncs).ParseFS(fsys, "layout.html", view+".html")
		if err != nil {
			return nil, fmt.Errorf("[TemplateRenderer] parsing %s: %w", view, err)
		}
		pages[view] = tmpl
	}
	return &TemplateRenderer{pages: pages, bundle: bundle, appName: appName}, nil
}

func (tr *TemplateRenderer) Render(w http.ResponseWriter, r *http.Request, status int, view string, data ViewData) error {
	tmpl, ok := tr.pages[view]
	if !ok {
		return fmt.Errorf("[TemplateRenderer] unknown view %q", view)
	}

	locale := i18n.FromContext(r.Context())
	page := make(ViewData, len(data)+5)
	for k, v := range data {
		page[k] = v
	}
	page["T"] = func(key string) string { return tr.bundle.T(locale, key) }
	page["Lang"] = string(locale)
	page["AppName"] = tr.appName
	page["View"] = view
	page["Authenticated"] = sessionFromContext(r.Context()).Authenticated()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("[TemplateRenderer] executing %s: %w", view, err)
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// render writes view, adding the request language to data.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, view string, data ViewData) {
	if data == nil {
		data = ViewData{}
	}
	data["lang"] = string(localeOf(r))

	if err := s.renderer.Render(w, r, status, view, data); err != nil {
		log.Err(err).Str("view", view).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
		http.Error(w, `{"error":"Internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
