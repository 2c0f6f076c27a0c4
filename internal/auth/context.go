package auth

import (
	"context"
	"strings"

	"github.com/freightservices/quote-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uint
	DisplayName string
	Email       string
	Role        domain.UserRole
	RateSet     string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRole) bool {
	return strings.EqualFold(string(u.Role), string(role))
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsSuperAdmin checks if user is a super admin
func (u *UserContext) IsSuperAdmin() bool {
	return u.HasRole(domain.UserRoleSuperAdmin)
}

// UserIDPtr returns nil for anonymous contexts
func (u *UserContext) UserIDPtr() *uint {
	if u == nil || u.UserID == 0 {
		return nil
	}
	id := u.UserID
	return &id
}
