package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitScoreRequest is the request body for submitting a score as an
// authenticated user
type SubmitScoreRequest struct {
	Category string `json:"category"`
	Score    int64  `json:"score"`
}

// SubmitGuestScoreRequest is the request body for submitting a score as a
// guest. Token is the shared guest token baked into the client.
type SubmitGuestScoreRequest struct {
	Token    string `json:"token"`
	DeviceID string `json:"deviceId"`
	Username string `json:"username"`
	Category string `json:"category"`
	Score    int64  `json:"score"`
}
