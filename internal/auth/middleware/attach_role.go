package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/studiemaatje/huiswerkcoach/internal/rbac"
)

// ErrUnknownUser is returned by a RoleSource that has no record for a subject.
var ErrUnknownUser = errors.New("unknown user")

// RoleSource resolves the current role of a token subject.
type RoleSource interface {
	RoleOf(ctx context.Context, sub string) (string, error)
}

// SQLRoles reads roles from the users table by user id.
type SQLRoles struct{ DB *sql.DB }

func (s SQLRoles) RoleOf(ctx context.Context, sub string) (string, error) {
	var role string
	err := s.DB.QueryRowContext(ctx, `SELECT role FROM users WHERE id=$1`, sub).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) || usersTableMissing(err) {
		return "", ErrUnknownUser
	}
	return role, err
}

// RefreshRole swaps the role carried in the token for the stored one, so a
// parent demoted to student loses import rights before the token expires.
// With allowClaimFallback the token role stands when the user is not stored
// or the lookup fails; a stored role outside the policy is always refused.
func RefreshRole(src RoleSource, allowClaimFallback bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role, err := src.RoleOf(ctx, rbac.SubjectFromContext(ctx))
			if err == nil {
				if !rbac.ValidRole(role) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, role)))
				return
			}
			if !errors.Is(err, ErrUnknownUser) {
				log.Printf("role lookup: %v", err)
			}
			if allowClaimFallback && rbac.RoleFromContext(ctx) != "" {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

func usersTableMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table: users") ||
		strings.Contains(msg, `relation "users" does not exist`)
}
