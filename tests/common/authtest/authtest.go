//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// MintToken signs a token with the test config's secret so requests pass the
// real auth middleware without a login flow.
func MintToken(t *testing.T, cfg config.Config, role user.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err, "invalid JWT duration in test config")

	svc := jwt.NewService(cfg.JWT.Secret, duration)
	token, err := svc.GenerateToken(uuid.New(), role)
	require.NoError(t, err, "failed to sign test token")

	return token
}
