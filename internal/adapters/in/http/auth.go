package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ErrUnauthenticated is returned when a request carries no valid bearer token.
var ErrUnauthenticated = errors.New("authentication required")

// Claims are the JWT claims issued by the storefront identity provider.
// The subject is the actor id. UserType names the category; when it is empty
// the category is derived from Role.
type Claims struct {
	UserType string `json:"user_type,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator resolves HS256 bearer tokens to actors.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Issue signs a token for a. It is used by tooling and tests; production tokens
// come from the identity provider.
func (a *Authenticator) Issue(act actor.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserType: act.Category().String(),
		Role:     act.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   act.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Authenticate validates token and returns the actor it names.
func (a *Authenticator) Authenticate(token string) (actor.Actor, error) {
	var claims Claims
	_, err := a.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: subject: %w", ErrUnauthenticated, err)
	}

	categoryName := claims.UserType
	if categoryName == "" {
		categoryName = claims.Role
	}
	category, err := actor.CategoryFromRole(categoryName)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	act, err := actor.NewActor(id, category, claims.Role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return act, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" header and
// stores the actor in the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return ErrUnauthenticated
			}

			act, err := a.Authenticate(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(actorContextKey, act)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (actor.Actor, error) {
	act, ok := c.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, ErrUnauthenticated
	}
	return act, nil
}
