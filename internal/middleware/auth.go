// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// TutorKey is the context key for the authenticated tutor.
	TutorKey contextKey = "tutor"

	// AccessTokenCookie is the cookie the identity provider sets after login.
	AccessTokenCookie = "access_token"

	// RoleTutor is the only role allowed on the tutor pages.
	RoleTutor = "tutor"
)

var errMissingToken = errors.New("missing access token")

// Claims are the access token claims issued by the identity provider.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tutor is the authenticated caller. Token is the raw access token and is
// forwarded to the course API.
type Tutor struct {
	ID    string
	Name  string
	Role  string
	Token string
}

// SignTutorToken issues an HS256 access token. Used by the dev token
// command and by tests; production tokens come from the identity provider.
func SignTutorToken(secret []byte, id, name, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseTutorToken validates an access token and returns the tutor it names.
func ParseTutorToken(secret []byte, raw string) (*Tutor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("parse token: invalid claims")
	}

	return &Tutor{
		ID:    claims.Subject,
		Name:  claims.Name,
		Role:  claims.Role,
		Token: raw,
	}, nil
}

// RequireTutor authenticates the request from the access token cookie or an
// Authorization bearer header. Unauthenticated requests go to loginURL
// (HX-Redirect for HTMX); authenticated non-tutors get 403.
func RequireTutor(secret []byte, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := accessToken(r)
			if err == nil {
				var tutor *Tutor
				tutor, err = ParseTutorToken(secret, raw)
				if err == nil {
					if tutor.Role != RoleTutor {
						http.Error(w, "Forbidden", http.StatusForbidden)
						return
					}
					ctx := context.WithValue(r.Context(), TutorKey, tutor)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if !errors.Is(err, errMissingToken) {
				slog.Warn("rejected access token", "error", err, "path", r.URL.Path)
			}

			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", loginURL)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, loginURL, http.StatusSeeOther)
		})
	}
}

// TutorFromCtx extracts the authenticated tutor from the request context.
// Returns nil outside RequireTutor.
func TutorFromCtx(ctx context.Context) *Tutor {
	tutor, _ := ctx.Value(TutorKey).(*Tutor)
	return tutor
}

// WithTutor returns a copy of ctx carrying tutor.
func WithTutor(ctx context.Context, tutor *Tutor) context.Context {
	return context.WithValue(ctx, TutorKey, tutor)
}

func accessToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok && token != "" {
			return token, nil
		}
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errMissingToken
}
