package usecase

import (
	"studio-booking/internal/domain/user"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid or expired token")

// TokenValidator translates raw bearer tokens into an identity usable by
// middleware. It keeps the jwt package out of the handler layer.
type TokenValidator interface {
	Validate(token string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) Validate(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidToken)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidToken)
	}

	return claims.UserID, role, nil
}
