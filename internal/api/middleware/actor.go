package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Заголовки, из которых собирается контекст актора
const (
	HeaderUserID  = "X-User-ID"
	HeaderRoles   = "X-User-Roles"
	HeaderSurface = "X-Booking-Surface"
)

// Роли, дающие привилегию управления бронированиями
var elevatedRoles = map[string]bool{
	"administrator":   true,
	"booking_manager": true,
}

type actorKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Actor собирает контекст актора из заголовков запроса. Запросы без
// идентификации пользователя отклоняются
func Actor(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := domain.ParseUserIdentity(r.Header.Get(HeaderUserID))
			if !user.IsKnown() {
				log.Warn("%s %s - missing or malformed %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, "идентификатор пользователя не передан")
				return
			}

			roles := parseRoles(r.Header.Get(HeaderRoles))
			actor := domain.ActorContext{
				User:       user,
				Roles:      roles,
				IsElevated: hasElevatedRole(roles),
				IsFrontend: strings.EqualFold(r.Header.Get(HeaderSurface), "frontend"),
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext возвращает контекст актора, сохраненный middleware
func ActorFromContext(ctx context.Context) domain.ActorContext {
	actor, _ := ctx.Value(actorKey{}).(domain.ActorContext)
	return actor
}

func parseRoles(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if role := strings.TrimSpace(p); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func hasElevatedRole(roles []string) bool {
	for _, role := range roles {
		if elevatedRoles[role] {
			return true
		}
	}
	return false
}
