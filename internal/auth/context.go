// ABOUTME: Context propagation for the authenticated identity
// ABOUTME: Provides WithIdentity/IdentityFromContext for request handlers

package auth

import "context"

// identityKey is the key type for storing the Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the identity latch attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the identity latch from the context,
// returning nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	val := ctx.Value(identityKey{})
	if val == nil {
		return nil
	}
	id, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return id
}

// MustIdentityFromContext retrieves the identity latch from the context,
// panicking if not present.
func MustIdentityFromContext(ctx context.Context) *Identity {
	id := IdentityFromContext(ctx)
	if id == nil {
		panic("auth: Identity not found in context")
	}
	return id
}
