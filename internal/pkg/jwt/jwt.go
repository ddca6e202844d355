package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens minted by the platform auth service with the
// shared HS256 secret. This service never issues tokens.
type Service struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewService(secret string) *Service {
	return &Service{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (s *Service) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// StringClaim extracts a non-empty string claim from a decoded claim map.
func StringClaim(claims map[string]interface{}, key string) (string, bool) {
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
