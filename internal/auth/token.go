package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultIssuer = "document-management-api"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidHeader = errors.New("invalid authorization header")
)

// Identity is the authenticated caller as seen by every component after the
// token has been verified.
type Identity struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HasRole compares roles case-insensitively.
func (i Identity) HasRole(role string) bool {
	return strings.EqualFold(i.Role, role)
}

type TokenManager struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
	now       func() time.Time
}

func NewTokenManager(secret string, expiresIn time.Duration) *TokenManager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if expiresIn <= 0 {
		expiresIn = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:    []byte(secret),
		issuer:    defaultIssuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// Issue signs a token for the identity. The role is stored uppercased.
func (tm *TokenManager) Issue(identity Identity) (string, time.Time, error) {
	if identity.ID == 0 {
		return "", time.Time{}, fmt.Errorf("user id required")
	}
	now := tm.now()
	expiresAt := now.Add(tm.expiresIn)
	claims := jwt.MapClaims{
		"id":       identity.ID,
		"username": identity.Username,
		"role":     NormalizeRole(identity.Role),
		"sub":      strconv.FormatUint(identity.ID, 10),
		"iss":      tm.issuer,
		"iat":      jwt.NewNumericDate(now),
		"exp":      jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and folds the accepted claim shapes into
// a single Identity.
func (tm *TokenManager) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(tm.now))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return IdentityFromClaims(claims)
}

// IdentityFromClaims normalizes the id and role claims. Older tokens carry
// the id as userId, user_id or sub and the role as userRole or user_role.
func IdentityFromClaims(claims map[string]interface{}) (Identity, error) {
	var identity Identity

	for _, key := range []string{"id", "userId", "user_id", "sub"} {
		if id, ok := numericClaim(claims[key]); ok {
			identity.ID = id
			break
		}
	}
	if identity.ID == 0 {
		return Identity{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	for _, key := range []string{"role", "userRole", "user_role"} {
		if role, ok := claims[key].(string); ok && role != "" {
			identity.Role = NormalizeRole(role)
			break
		}
	}

	for _, key := range []string{"username", "userName", "name"} {
		if name, ok := claims[key].(string); ok && name != "" {
			identity.Username = name
			break
		}
	}

	return identity, nil
}

func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func numericClaim(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != math.Trunc(n) || n > math.MaxUint64 {
			return 0, false
		}
		return uint64(n), true
	case json.Number:
		id, err := strconv.ParseUint(n.String(), 10, 64)
		return id, err == nil && id > 0
	case string:
		id, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64)
		return id, err == nil && id > 0
	case int:
		return uint64(n), n > 0
	case int64:
		return uint64(n), n > 0
	case uint64:
		return n, n > 0
	default:
		return 0, false
	}
}

// ExtractToken returns the token from an "Authorization: Bearer <token>" value.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidHeader
	}
	return parts[1], nil
}
