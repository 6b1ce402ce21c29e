package users

import "time"

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type geminiKeyRequest struct {
	GeminiAPIKey string `json:"gemini_api_key" binding:"required"`
}

// UserDTO is the sanitized account shape; the credential itself is never
// echoed back, only its presence.
type UserDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	HasGeminiKey bool      `json:"has_gemini_key"`
	CreatedAt    time.Time `json:"created_at"`
}

type authResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

func newAuthResponse(token string, u User) authResponse {
	return authResponse{AccessToken: token, TokenType: "bearer", User: ToDTO(u)}
}

// ToDTO converts the model to its public shape.
func ToDTO(u User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		HasGeminiKey: u.HasGeminiKey(),
		CreatedAt:    u.CreatedAt,
	}
}
