package services

import (
	"context"
	"log"
	"strings"

	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
)

// Authorizer decides whether a principal holds admin privilege. Checks
// run in precedence order until one answers yes: the deployment-time
// allow-list, the stored profile role, then an email heuristic kept for
// compatibility with existing deployments. A failed profile lookup is
// treated as a negative answer, never as an error: callers redirect on
// false and must not break on a flaky store.
//
// The heuristic and the role check only gate views here; the backend
// permission configuration stays the authoritative enforcement point.
type Authorizer struct {
	users          repository.UserRepository
	allowList      map[string]struct{}
	adminEmail     string
	emailHeuristic bool
}

// NewAuthorizer constructs an Authorizer with the static allow-list of
// trusted UIDs.
func NewAuthorizer(users repository.UserRepository, allowUIDs []string, adminEmail string, emailHeuristic bool) *Authorizer {
	allowList := make(map[string]struct{}, len(allowUIDs))
	for _, uid := range allowUIDs {
		allowList[uid] = struct{}{}
	}

	return &Authorizer{
		users:          users,
		allowList:      allowList,
		adminEmail:     adminEmail,
		emailHeuristic: emailHeuristic,
	}
}

// IsAdmin reports whether the principal holds admin privilege.
func (a *Authorizer) IsAdmin(ctx context.Context, p Principal) bool {
	if _, ok := a.allowList[p.UID.String()]; ok {
		return true
	}

	user, err := a.users.GetByID(ctx, p.UID)
	if err == nil && user.Role == models.RoleAdmin {
		return true
	}
	if err != nil && err != repository.ErrNotFound {
		log.Printf("[Authz] profile lookup failed for %s: %v", p.UID, err)
	}

	if a.emailHeuristic && p.Email != "" {
		if p.Email == a.adminEmail || strings.Contains(p.Email, "admin") {
			return true
		}
	}

	return false
}
