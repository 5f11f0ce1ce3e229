package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteRoot = "/{$}"

	// Auth Routes - Login & Logout
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Auth Routes - Registration
	RouteRegister = "/register"

	// Auth Routes - Password Reset
	RouteForgotPassword           = "/forgot-password"
	RouteForgotPasswordEnterEmail = "/forgot-password/enter-email"
	RouteForgotPasswordVerifyOTP  = "/forgot-password/verify-otp"
	RouteForgotPasswordResendOTP  = "/forgot-password/resend-otp"
	RouteForgotPasswordReset      = "/forgot-password/reset-password"

	// Admin Routes
	RouteAdmin           = "/admin"
	RouteAccount         = "/account"
	RouteAccountUpdate   = "/account/update"
	RouteAccountRequests = "/account-requests"
	RouteManageAccounts  = "/manage-accounts"
	RouteUpdateBanner    = "/update-banner"

	// Admin actions
	RouteRequestAccept = "/requests/{id}/accept"
	RouteRequestReject = "/requests/{id}/reject"
	RouteAccountDelete = "/accounts/{id}/delete"

	// JSON Routes
	RouteRequestsPending       = "/requests/pending"
	RouteAccountAll            = "/account/all"
	RoutePopularChatCategories = "/popular-chat-categories"
	RouteUserActivity          = "/user-activity"
	RouteChatCategoryBreakdown = "/chat-category-breakdown"
	RouteI18nButtons           = "/i18n/buttons"
	RouteI18nActions           = "/i18n/actions"
	RouteMetrics               = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
