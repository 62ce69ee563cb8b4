package jwt_test

import (
	"context"
	"testing"

	"houserental/config"
	"houserental/infras/jwt"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	return jwt.New(newConfig())
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "houserental"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "tenant@example.com", "tenant")
	require.NoError(t, err)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant", claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "agent@example.com", "agent")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "agent", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateTokenRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		cfg := newConfig()
		cfg.JWT.AccessExpireMin = -5

		pair, err := jwt.New(cfg).GenerateTokenPair(ctx, "user-1", "tenant@example.com", "tenant")
		require.NoError(t, err)

		_, err = newService().ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		cfg := newConfig()
		cfg.App.Name = "someone-else"

		pair, err := jwt.New(cfg).GenerateTokenPair(ctx, "user-1", "tenant@example.com", "tenant")
		require.NoError(t, err)

		_, err = newService().ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong token type under the right secret", func(t *testing.T) {
		claims := jwt.Claims{UserID: "user-1", Role: "tenant", Type: jwt.RefreshToken}
		claims.Issuer = "houserental"

		signed, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = newService().ValidateToken(ctx, signed, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("other signing method", func(t *testing.T) {
		claims := jwt.Claims{UserID: "user-1", Type: jwt.AccessToken}
		claims.Issuer = "houserental"

		signed, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = newService().ValidateToken(ctx, signed, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer abc", want: "abc"},
		{header: "", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
