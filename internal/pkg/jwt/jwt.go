package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingClaims = errors.New("token is missing required claims")
)

// Identity is the caller recovered from a verified access token.
type Identity struct {
	EmployeeID string
	Role       employee.Role
}

// IsManager reports whether the caller may read and publish for other employees.
func (i Identity) IsManager() bool {
	return i.Role == employee.RoleAdmin
}

type Service interface {
	GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"sub":         employeeID,
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromContext reads the claims placed on ctx by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Identity{}, ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Identity{}, ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	if employeeID == "" || !employee.Role(role).IsValid() {
		return Identity{}, ErrMissingClaims
	}
	return Identity{EmployeeID: employeeID, Role: employee.Role(role)}, nil
}
