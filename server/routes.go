package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-admin-frontend/dashboard"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteRoot, ChainMiddleware(s.RootHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// REGISTRATION
	s.RegisterRouteFunc("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleWare()...))

	// PASSWORD RESET
	s.RegisterRouteFunc("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteForgotPasswordEnterEmail, ChainMiddleware(s.ForgotPasswordEmailHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteFunc("GET "+RouteForgotPasswordVerifyOTP, ChainMiddleware(s.VerifyOTPPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteForgotPasswordVerifyOTP, ChainMiddleware(s.VerifyOTPHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteFunc("POST "+RouteForgotPasswordResendOTP, ChainMiddleware(s.ResendOTPHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteFunc("GET "+RouteForgotPasswordReset, ChainMiddleware(s.ResetPasswordPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteForgotPasswordReset, ChainMiddleware(s.ResetPasswordHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))

	// Admin routes (require a signed-in session)
	s.RegisterRouteFunc("GET "+RouteAdmin, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteAccount, ChainMiddleware(s.AccountHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteAccountUpdate, ChainMiddleware(s.AccountUpdatePageHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("POST "+RouteAccountUpdate, ChainMiddleware(s.AccountUpdateHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteAccountRequests, ChainMiddleware(s.AccountRequestsHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("POST "+RouteRequestAccept, ChainMiddleware(s.AcceptRequestHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("POST "+RouteRequestReject, ChainMiddleware(s.RejectRequestHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteManageAccounts, ChainMiddleware(s.ManageAccountsHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("POST "+RouteAccountDelete, ChainMiddleware(s.DeleteAccountHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteUpdateBanner, ChainMiddleware(s.BannerPageHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteFunc("POST "+RouteUpdateBanner, ChainMiddleware(s.BannerUpdateHandler(), s.HTMLMiddleWare(s.RequireSession)...))

	// JSON routes used by the admin pages' scripts
	s.RegisterRouteFunc("GET "+RouteRequestsPending, ChainMiddleware(s.PendingRequestsJSONHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteAccountAll, ChainMiddleware(s.AllAccountsJSONHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RoutePopularChatCategories, ChainMiddleware(s.StatsJSONHandler(dashboard.PopularChatCategories, "Failed to load chat categories"), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteUserActivity, ChainMiddleware(s.StatsJSONHandler(dashboard.UserActivity, "Failed to load user activity"), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteChatCategoryBreakdown, ChainMiddleware(s.StatsJSONHandler(dashboard.ChatCategoryBreakdown, "Failed to fetch data"), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteFunc("GET "+RouteI18nButtons, ChainMiddleware(s.I18nHandler("actionAccept", "actionReject"), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteI18nActions, ChainMiddleware(s.I18nHandler("actionAccept", "actionReject", "actionDelete"), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	s.RegisterRouteFunc("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	s.RegisterRouteFunc("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Warn().Msgf("[%-19s] %s %s", displayMethod, path, errorString)
}
