package authenticate

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/api/cont"
	"AsmiDesk/internal/lib/sl"
)

// New builds the identity middleware. It logs every request and, when a
// valid bearer token is present, puts the caller's {id, role} pair on the
// context. Identity is optional: token issuance lives elsewhere and the
// core only uses it for agent attribution and chat list scoping, so
// requests without a token proceed anonymously.
func New(log *slog.Logger, jwtSecret string) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			loggerPtr := &logger
			defer func() {
				(*loggerPtr).With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			ctx := r.Context()
			if user := callerFromHeader(r.Header.Get("Authorization"), jwtSecret); user != nil {
				*loggerPtr = (*loggerPtr).With(
					slog.String("user", user.ID),
					slog.String("role", user.Role),
				)
				ctx = cont.PutUser(ctx, user)
				ww.Header().Set("X-User", user.ID)
			}

			ww.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// callerFromHeader parses a bearer JWT into a caller identity. Anything
// invalid yields an anonymous caller.
func callerFromHeader(header, secret string) *entity.UserAuth {
	if secret == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return nil
	}
	return &entity.UserAuth{ID: sub, Role: role, Name: name}
}
