package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tally-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestJWTService(secret string, lifetime time.Duration, now func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     2 * time.Minute,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))

	t.Run("round trips the player name", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), "  ada ")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "ada", claims.PlayerName)
		assert.Equal(t, "ada", claims.Subject)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects blank player", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GenerateToken(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyPlayerName)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))
				token, _ := svc.GenerateToken(context.Background(), "ada")
				return svc, token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (JWTService, string) {
				gen := newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "ada")
				later := fixedTime.Add(2 * time.Hour)
				return newTestJWTService(testSecret, time.Hour, fixedClock(later)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "expiry within clock skew",
			setupFunc: func() (JWTService, string) {
				gen := newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "ada")
				later := fixedTime.Add(time.Hour + time.Minute)
				return newTestJWTService(testSecret, time.Hour, fixedClock(later)), token
			},
		},
		{
			name: "wrong secret",
			setupFunc: func() (JWTService, string) {
				gen := newTestJWTService("wrong-secret-that-is-long-enough-for-testing", time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "ada")
				return newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				return newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime)), "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "token without player",
			setupFunc: func() (JWTService, string) {
				claims := playerClaims{RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
				}}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				return newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong signing method",
			setupFunc: func() (JWTService, string) {
				claims := playerClaims{PlayerName: "ada", RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
				}}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
				return newTestJWTService(testSecret, time.Hour, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tc.setupFunc()
			claims, err := svc.ValidateToken(context.Background(), token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada", claims.PlayerName)
		})
	}
}
