package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type LoginInput struct {
	Body struct {
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Admin password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken string    `json:"access_token"` //nolint:gosec // G117: auth response DTO
		ExpiresAt   time.Time `json:"expires_at"`
	}
}

// RegisterAuthRoutes mounts the unauthenticated login endpoint.
func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with the admin password",
		Tags:        []string{"Auth"},
	}, func(_ context.Context, input *LoginInput) (*LoginOutput, error) {
		token, expiresAt, err := authSvc.Login(input.Body.Password)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid password")
		}

		out := &LoginOutput{}
		out.Body.AccessToken = token
		out.Body.ExpiresAt = expiresAt
		return out, nil
	})
}
