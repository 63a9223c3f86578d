// Package jwttoken issues and verifies the HS256 access tokens that carry a
// caller's user id and admin flag.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	authmw "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/auth"
)

var (
	ErrTokenExpired  = dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	ErrTokenInvalid  = dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	ErrClaimsInvalid = dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
)

// Claims is the payload of an access token. UserID repeats the subject so
// clients can read it without knowing registered claim names.
type Claims struct {
	UserID string `json:"user_id"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates access tokens for one issuer and audience.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		now:        time.Now,
	}
}

// GenerateAccessToken signs a token for userID valid for expiresIn. Admin
// tokens unlock provisioning routes and every project's shared document.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, admin bool, expiresIn time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID.String(),
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// ValidateToken verifies signature, issuer, audience and expiry, and that the
// user_id claim is a UUID equal to the subject.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrTokenInvalid
	}

	if _, err := uuid.Parse(claims.UserID); err != nil || claims.Subject != claims.UserID {
		return nil, ErrClaimsInvalid
	}
	return claims, nil
}

func (s *JWTService) keyFunc(*jwt.Token) (any, error) {
	return s.signingKey, nil
}

// Validator exposes the service through the auth middleware's interface.
func (s *JWTService) Validator() authmw.JWTValidator {
	return middlewareValidator{tokens: s}
}

type middlewareValidator struct {
	tokens *JWTService
}

func (v middlewareValidator) ValidateToken(raw string) (*authmw.JWTClaims, error) {
	claims, err := v.tokens.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{UserID: claims.UserID, Admin: claims.Admin}, nil
}
