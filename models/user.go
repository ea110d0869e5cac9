package models

// ============================================================================
// SESSION
// ============================================================================

// Session holds the two credentials the dashboard keeps on behalf of the user.
// They are persisted under the keys "token" and "refreshToken".
type Session struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name,omitempty"`
}

// TokenPair is the body of POST /api/token/ and, with Refresh possibly empty,
// of POST /api/token/refresh/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ============================================================================
// PROFILE
// ============================================================================

type Preferences struct {
	DarkMode      bool `json:"dark_mode"`
	Notifications bool `json:"notifications"`
}

type Profile struct {
	ID          int64       `json:"id,omitempty"`
	Username    string      `json:"username,omitempty"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Preferences Preferences `json:"preferences"`
}

type UpdateProfileRequest struct {
	Name        string      `json:"name" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Phone       string      `json:"phone"`
	Preferences Preferences `json:"preferences"`
}
