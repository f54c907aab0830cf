package customer

import (
	"context"

	"ct-storefront/internal/commercetools"
)

// Repository creates and authenticates customers on the platform. Passwords
// are verified by the platform, never stored here.
type Repository interface {
	SignUp(ctx context.Context, draft commercetools.CustomerDraft) (*commercetools.Customer, error)
	// SignIn authenticates the customer. When anonymousCartID is set, that
	// cart is merged into the customer's active cart.
	SignIn(ctx context.Context, email, password, anonymousCartID string) (*commercetools.CustomerSignInResult, error)
	GetByID(ctx context.Context, id string) (*commercetools.Customer, error)
}
