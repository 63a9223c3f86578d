package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

const signingKey = "test-signing-key"

func newTestService(now time.Time) *JWTService {
	s := NewJWTService(signingKey, "test-issuer", "test-audience")
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidate(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	tokens := newTestService(now)
	userID := uuid.New()

	for _, admin := range []bool{false, true} {
		token, err := tokens.GenerateAccessToken(userID, admin, time.Hour)
		require.NoError(t, err)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, admin, claims.Admin)
		assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	tokens := newTestService(now)
	userID := uuid.New()

	sign := func(t *testing.T, claims Claims, method jwt.SigningMethod, key any) string {
		t.Helper()
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}
	valid := func() Claims {
		return Claims{
			UserID: userID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				Issuer:    "test-issuer",
				Audience:  jwt.ClaimStrings{"test-audience"},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	tests := map[string]struct {
		token func(t *testing.T) string
		want  error
	}{
		"garbage": {
			token: func(*testing.T) string { return "invalid-token-string" },
			want:  ErrTokenInvalid,
		},
		"expired": {
			token: func(t *testing.T) string {
				raw, err := tokens.GenerateAccessToken(userID, false, -time.Minute)
				require.NoError(t, err)
				return raw
			},
			want: ErrTokenExpired,
		},
		"wrong audience": {
			token: func(t *testing.T) string {
				c := valid()
				c.Audience = jwt.ClaimStrings{"another-audience"}
				return sign(t, c, jwt.SigningMethodHS256, []byte(signingKey))
			},
			want: ErrTokenInvalid,
		},
		"wrong issuer": {
			token: func(t *testing.T) string {
				c := valid()
				c.Issuer = "someone-else"
				return sign(t, c, jwt.SigningMethodHS256, []byte(signingKey))
			},
			want: ErrTokenInvalid,
		},
		"wrong key": {
			token: func(t *testing.T) string {
				return sign(t, valid(), jwt.SigningMethodHS256, []byte("another-key"))
			},
			want: ErrTokenInvalid,
		},
		"other HMAC algorithm": {
			token: func(t *testing.T) string {
				return sign(t, valid(), jwt.SigningMethodHS512, []byte(signingKey))
			},
			want: ErrTokenInvalid,
		},
		"missing expiry": {
			token: func(t *testing.T) string {
				c := valid()
				c.ExpiresAt = nil
				return sign(t, c, jwt.SigningMethodHS256, []byte(signingKey))
			},
			want: ErrTokenInvalid,
		},
		"user id is not a uuid": {
			token: func(t *testing.T) string {
				c := valid()
				c.UserID, c.Subject = "alice", "alice"
				return sign(t, c, jwt.SigningMethodHS256, []byte(signingKey))
			},
			want: ErrClaimsInvalid,
		},
		"subject differs from user id": {
			token: func(t *testing.T) string {
				c := valid()
				c.Subject = uuid.NewString()
				return sign(t, c, jwt.SigningMethodHS256, []byte(signingKey))
			},
			want: ErrClaimsInvalid,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.ValidateToken(tt.token(t))
			require.ErrorIs(t, err, tt.want)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func TestValidator(t *testing.T) {
	tokens := newTestService(time.Now())
	userID := uuid.New()
	token, err := tokens.GenerateAccessToken(userID, true, time.Hour)
	require.NoError(t, err)

	claims, err := tokens.Validator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.True(t, claims.Admin)

	_, err = tokens.Validator().ValidateToken("nope")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
