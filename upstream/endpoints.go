package upstream

import (
	"net/url"
	"strings"
)

// Account service endpoints
const (
	PathCSRF = "/csrf"

	PathLogin         = "/login/admin"
	PathRegisterAdmin = "/account/register/admin"

	PathForgotEnterEmail    = "/forgot-password/enter-email"
	PathForgotVerifyOTP     = "/forgot-password/verify-otp"
	PathForgotResendOTP     = "/forgot-password/resend-otp"
	PathForgotResetPassword = "/forgot-password/reset-password"

	PathAccountUsername = "/account/username"
	PathAccountEmail    = "/account/email"
	PathAccountDobDay   = "/account/date-of-birth/day"
	PathAccountDobMonth = "/account/date-of-birth/month"
	PathAccountDobYear  = "/account/date-of-birth/year"
	PathAccountUpdate   = "/account/update"
	PathAccountAll      = "/account/all"
	PathAccountPending  = "/account/pending"

	PathSupportBanner = "/support-banner/1"

	PathStatsPopularChatCategories = "/statistics/popular-chat-categories"
	PathStatsUserActivity          = "/statistics/user-activity"
	PathStatsChatCategoryBreakdown = "/statistics/chat-category-breakdown"
)

// Prefixes of endpoints addressed by an account or request id.
const (
	prefixAccount = "/account/"
	prefixApprove = "/account/approve/"
	prefixReject  = "/account/reject/"
)

var fixedPaths = map[string]struct{}{
	PathCSRF: {}, PathLogin: {}, PathRegisterAdmin: {},
	PathForgotEnterEmail: {}, PathForgotVerifyOTP: {}, PathForgotResendOTP: {}, PathForgotResetPassword: {},
	PathAccountUsername: {}, PathAccountEmail: {}, PathAccountDobDay: {}, PathAccountDobMonth: {}, PathAccountDobYear: {},
	PathAccountUpdate: {}, PathAccountAll: {}, PathAccountPending: {},
	PathSupportBanner: {},
	PathStatsPopularChatCategories: {}, PathStatsUserActivity: {}, PathStatsChatCategoryBreakdown: {},
}

func AccountPath(id string) string {
	return prefixAccount + url.PathEscape(id)
}

func ApprovePath(id string) string {
	return prefixApprove + url.PathEscape(id)
}

func RejectPath(id string) string {
	return prefixReject + url.PathEscape(id)
}

// endpointLabel maps a request path onto a bounded set of metric labels.
func endpointLabel(path string) string {
	if _, ok := fixedPaths[path]; ok {
		return path
	}
	for _, prefix := range []string{prefixApprove, prefixReject, prefixAccount} {
		if strings.HasPrefix(path, prefix) {
			return prefix + "{id}"
		}
	}
	return "other"
}
