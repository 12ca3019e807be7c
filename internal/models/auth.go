package models

type User struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          *string `json:"name,omitempty"`
	Image         *string `json:"image,omitempty"`
	EmailVerified bool    `json:"emailVerified"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type Session struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	ExpiresAt string  `json:"expiresAt"`
	Token     string  `json:"token"`
	IPAddress *string `json:"ipAddress,omitempty"`
	UserAgent *string `json:"userAgent,omitempty"`
}

// AuthResponse is returned by sign-in, sign-up and get-session.
type AuthResponse struct {
	User    *User    `json:"user,omitempty"`
	Session *Session `json:"session,omitempty"`
}

type SignInRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe *bool  `json:"rememberMe,omitempty"`
}

type SignUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

// ErrorResponse is the JSON error body sent by the auth service.
type ErrorResponse struct {
	Message string `json:"message"`
}
