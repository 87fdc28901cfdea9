package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when no user claims are present on the
// context. Handlers map it to a 401 response.
var ErrUnauthenticated = errors.New("user not authenticated")

// RequireAuth extracts user claims from context or returns an unauthenticated error
func RequireAuth(ctx context.Context) (*UserClaims, error) {
	claims, ok := GetUserClaims(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// WrapStoreError wraps store errors with operation context
func WrapStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
