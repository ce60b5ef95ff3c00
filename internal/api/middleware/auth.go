package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	msgMissingToken = "требуется токен администратора"
	msgInvalidToken = "недействительный токен"
)

type adminKey struct{}

// AdminAuth проверяет Bearer JWT (HS256) с нужным issuer и кладет subject в контекст
func AdminAuth(secret, issuer string, logger Logger) mux.MiddlewareFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			var claims jwt.RegisteredClaims
			token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					logger.Info("AdminAuth: expired token for %s", claims.Subject)
				} else {
					logger.Warn("AdminAuth: rejected token on %s %s: %v", r.Method, r.URL.Path, err)
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), claims.Subject)))
		})
	}
}

// WithAdmin кладет subject администратора в контекст
func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey{}, subject)
}

// GetAdmin возвращает subject администратора из контекста
func GetAdmin(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(adminKey{}).(string)
	return sub, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		// EventSource в браузере не умеет ставить заголовки
		if t := r.URL.Query().Get("access_token"); t != "" && strings.HasSuffix(r.URL.Path, "/stream") {
			return t, true
		}
		return "", false
	}
	t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return t, t != ""
}
