package httpx

// Page identifiers. Each maps to a "<name>-content" template.
const (
	PageHome              = "home"
	PageLogin             = "login"
	PageRegister          = "register"
	PageEmployerDashboard = "employer-dashboard"
	PageError             = "error"
)

// Cookie names.
const (
	ClientCookieName = "jobboard_client"
	FlashCookieName  = "jobboard_flash"
)

// Request headers read by the handlers.
const (
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"
	HeaderAcceptCH           = "Accept-CH"
)

// Flash messages.
const (
	FlashRegistered        = "Registration successful! Please sign in."
	FlashAccountDeleted    = "Account deleted successfully"
	FlashDeleteFailed      = "Failed to delete account. Please try again."
	FlashListingDegraded   = "Failed to load jobs. Showing demo content."
	FlashSubmissionPending = "Your previous request is still being processed."
)

// Paths used in redirects.
const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

// ContentTemplateMap maps page names to their content templates.
func ContentTemplateMap() map[string]string {
	return map[string]string{
		PageHome:              "home-content",
		PageLogin:             "login-content",
		PageRegister:          "register-content",
		PageEmployerDashboard: "employer-dashboard-content",
		PageError:             "error-content",
	}
}

// ContentTemplateFor returns the content template for page, falling back to
// the home content.
func ContentTemplateFor(page string) string {
	if name, ok := ContentTemplateMap()[page]; ok {
		return name
	}
	return "home-content"
}
