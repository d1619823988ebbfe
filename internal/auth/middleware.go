package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type Claims struct {
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

type contextKey string

const UserContextKey contextKey = "user"

var (
	ErrMissingToken  = errors.New("missing token")
	ErrTokenExpired  = errors.New("token expired")
	ErrNoIssuer      = errors.New("OIDC_ISSUER not configured for JWT verification")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Options controls how tokens are checked
type Options struct {
	SkipAuth        bool
	OIDCIssuer      string
	VerifySignature bool
}

// Authenticator validates bearer tokens issued by an OIDC provider
type Authenticator struct {
	opts   Options
	logger zerolog.Logger
	now    func() time.Time

	mu   sync.Mutex
	jwks keyfunc.Keyfunc
}

// New creates an Authenticator. JWKS are fetched lazily on the first
// verified token.
func New(opts Options, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		opts:   opts,
		logger: logger.With().Str("component", "auth").Logger(),
		now:    time.Now,
	}
}

// keyfunc returns the JWKS-backed keyfunc, fetching the key set once
func (a *Authenticator) keyfunc() (jwt.Keyfunc, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.jwks != nil {
		return a.jwks.Keyfunc, nil
	}
	if a.opts.OIDCIssuer == "" {
		return nil, ErrNoIssuer
	}

	// Keycloak layout
	jwksURL := strings.TrimSuffix(a.opts.OIDCIssuer, "/") + "/protocol/openid-connect/certs"
	a.logger.Info().Str("url", jwksURL).Msg("fetching JWKS")

	k, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyfunc: %w", err)
	}
	a.jwks = k
	return k.Keyfunc, nil
}

// Middleware validates JWT tokens and stores the claims in the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.opts.SkipAuth {
			ctx := context.WithValue(r.Context(), UserContextKey, &Claims{
				Email:  "dev@monti.local",
				Name:   "Dev User",
				Role:   "admin",
				Groups: []string{"developers"},
			})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		tokenString := extractToken(r)
		if tokenString == "" {
			a.logger.Debug().Str("path", r.URL.Path).Msg("missing authorization token")
			http.Error(w, "Unauthorized: Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := a.validateToken(tokenString)
		if err != nil {
			a.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
			http.Error(w, fmt.Sprintf("Unauthorized: %v", err), http.StatusUnauthorized)
			return
		}

		a.logger.Debug().Str("email", claims.Email).Str("role", claims.Role).Msg("user authenticated")

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header or the token
// query parameter, which chart <img> requests use.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
	}
	return r.URL.Query().Get("token")
}

// validateToken parses the token, verifying its signature when configured
func (a *Authenticator) validateToken(tokenString string) (*Claims, error) {
	var token *jwt.Token
	var err error

	if a.opts.VerifySignature {
		kf, kerr := a.keyfunc()
		if kerr != nil {
			return nil, kerr
		}
		token, err = jwt.Parse(tokenString, kf, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}))
		if err != nil {
			return nil, fmt.Errorf("token verification failed: %w", err)
		}
		if !token.Valid {
			return nil, fmt.Errorf("invalid token")
		}
	} else {
		token, _, err = jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	claims := &Claims{}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	} else if preferredUsername, ok := mapClaims["preferred_username"].(string); ok {
		claims.Name = preferredUsername
	}
	claims.Role = extractRole(mapClaims)
	claims.Groups = extractGroups(mapClaims)
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}

	// verified tokens had exp checked by jwt.Parse
	if !a.opts.VerifySignature {
		if exp, ok := mapClaims["exp"].(float64); ok {
			expTime := time.Unix(int64(exp), 0)
			claims.ExpiresAt = jwt.NewNumericDate(expTime)
			if expTime.Before(a.now()) {
				return nil, ErrTokenExpired
			}
		}
	}

	return claims, nil
}

// extractRole picks the highest role from Keycloak realm roles or
// Cognito-style group claims
func extractRole(mapClaims jwt.MapClaims) string {
	if realmAccess, ok := mapClaims["realm_access"].(map[string]interface{}); ok {
		if roles, ok := realmAccess["roles"].([]interface{}); ok {
			for _, priority := range []string{"admin", "supervisor", "agent", "viewer"} {
				for _, role := range roles {
					if roleStr, ok := role.(string); ok && roleStr == priority {
						return roleStr
					}
				}
			}
		}
	}

	for _, key := range []string{"cognito:groups", "custom:groups"} {
		groups, ok := mapClaims[key].([]interface{})
		if !ok {
			continue
		}
		for _, group := range groups {
			groupStr, ok := group.(string)
			if !ok {
				continue
			}
			for _, role := range []string{"admin", "supervisor", "agent"} {
				if strings.Contains(groupStr, role) {
					return role
				}
			}
		}
	}

	return "viewer"
}

func extractGroups(mapClaims jwt.MapClaims) []string {
	var groups []string
	for _, key := range []string{"groups", "cognito:groups"} {
		if claim, ok := mapClaims[key].([]interface{}); ok {
			for _, group := range claim {
				if groupStr, ok := group.(string); ok {
					groups = append(groups, groupStr)
				}
			}
		}
	}
	return groups
}

// GetUserFromContext retrieves user claims from request context
func GetUserFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	return claims, ok
}
