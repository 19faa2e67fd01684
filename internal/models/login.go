package models

// LoginResult holds a freshly issued session token and the public user data.
type LoginResult struct {
	Token     string      // Signed JWT
	ExpiresIn int64       // Token validity in seconds
	User      UserSummary // Public user summary
}
