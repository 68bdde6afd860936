package v1

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaadly/vaadly/internal/domain"
)

// mapError translates the domain error taxonomy to HTTP statuses:
// InvalidInput 400, Unauthorized 401, NotFound 404, Conflict 409,
// everything else 500.
func mapError(err error, msg string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return huma.Error400BadRequest(ve.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return huma.Error400BadRequest(msg, err)
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.Error401Unauthorized(msg)
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(msg)
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(msg)
	default:
		return huma.Error500InternalServerError(msg, err)
	}
}
