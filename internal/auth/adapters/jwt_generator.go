package adapters

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Every token carries exactly one; parsers reject mismatches
// so a refresh token can never pass as an access token.
const (
	ScopeAccess       = "access"
	ScopeRefresh      = "refresh"
	ScopeVerification = "verification"
	ScopeReset        = "reset"
)

// Lifetimes for the single-purpose tokens.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongScope   = errors.New("token has wrong scope")
)

// Claims defines the JWT claims structure. Subject holds the user email;
// refresh tokens additionally carry a jti (RegisteredClaims.ID) that anchors
// the server-side rotation record.
type Claims struct {
	UserID int64  `json:"uid"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTTokenGenerator defines the interface for generating and parsing JWTs.
type JWTTokenGenerator interface {
	GenerateTokenPair(userID int64, email string) (accessToken, refreshToken string, refreshClaims *Claims, err error)
	GenerateVerificationToken(userID int64, email string) (string, error)
	GeneratePasswordResetToken(userID int64, email string) (string, error)
	ParseToken(tokenString, wantScope string) (*Claims, error)
}

// JWTGenerator implements JWTTokenGenerator with HS256 signing.
type JWTGenerator struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTTokenGenerator(secret string, accessTTL, refreshTTL time.Duration) JWTTokenGenerator {
	return &JWTGenerator{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (j *JWTGenerator) newClaims(userID int64, email, scope string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

func (j *JWTGenerator) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// GenerateTokenPair issues an access token and a refresh token for the user.
// The refresh claims are returned so the caller can persist the jti.
func (j *JWTGenerator) GenerateTokenPair(userID int64, email string) (string, string, *Claims, error) {
	accessToken, err := j.sign(j.newClaims(userID, email, ScopeAccess, j.accessTTL))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := j.newClaims(userID, email, ScopeRefresh, j.refreshTTL)
	refreshClaims.ID = uuid.NewString()
	refreshToken, err := j.sign(refreshClaims)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return accessToken, refreshToken, refreshClaims, nil
}

// GenerateVerificationToken issues a 24h single-purpose email confirmation token.
func (j *JWTGenerator) GenerateVerificationToken(userID int64, email string) (string, error) {
	return j.sign(j.newClaims(userID, email, ScopeVerification, VerificationTokenTTL))
}

// GeneratePasswordResetToken issues a 1h single-purpose reset token.
func (j *JWTGenerator) GeneratePasswordResetToken(userID int64, email string) (string, error) {
	return j.sign(j.newClaims(userID, email, ScopeReset, ResetTokenTTL))
}

// ParseToken validates signature and expiry and enforces the expected scope.
func (j *JWTGenerator) ParseToken(tokenString, wantScope string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Scope != wantScope {
		return nil, ErrWrongScope
	}
	return claims, nil
}
