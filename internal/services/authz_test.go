package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/cashwave/internal/models"
)

func TestIsAdmin_AllowListWinsEvenWhenStoreIsDown(t *testing.T) {
	users := newMockUserRepo()
	users.err = errors.New("store unreachable")

	trusted := uuid.New()
	authz := NewAuthorizer(users, []string{trusted.String()}, "admin@cashwave.com", false)

	assert.True(t, authz.IsAdmin(context.Background(), Principal{UID: trusted, Email: "any@example.com"}))
}

func TestIsAdmin_StoredRole(t *testing.T) {
	users := newMockUserRepo()
	admin := &models.User{Email: "lead@example.com", Role: models.RoleAdmin}
	users.put(admin)
	customer := &models.User{Email: "shopper@example.com", Role: models.RoleCustomer}
	users.put(customer)

	authz := NewAuthorizer(users, nil, "admin@cashwave.com", false)

	assert.True(t, authz.IsAdmin(context.Background(), Principal{UID: admin.ID, Email: admin.Email}))
	assert.False(t, authz.IsAdmin(context.Background(), Principal{UID: customer.ID, Email: customer.Email}))
}

func TestIsAdmin_LookupErrorDeniesInsteadOfFailing(t *testing.T) {
	users := newMockUserRepo()
	users.err = errors.New("store unreachable")

	authz := NewAuthorizer(users, nil, "admin@cashwave.com", false)

	assert.False(t, authz.IsAdmin(context.Background(), Principal{UID: uuid.New(), Email: "shopper@example.com"}))
}

func TestIsAdmin_EmailHeuristic(t *testing.T) {
	users := newMockUserRepo()

	cases := []struct {
		name      string
		heuristic bool
		email     string
		want      bool
	}{
		{"reserved address", true, "admin@cashwave.com", true},
		{"substring match", true, "site-admin@example.com", true},
		{"plain customer", true, "shopper@example.com", false},
		{"heuristic disabled", false, "admin@cashwave.com", false},
		{"empty email", true, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			authz := NewAuthorizer(users, nil, "admin@cashwave.com", tc.heuristic)
			got := authz.IsAdmin(context.Background(), Principal{UID: uuid.New(), Email: tc.email})
			assert.Equal(t, tc.want, got)
		})
	}
}
