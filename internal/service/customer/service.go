package customer

import (
	"context"
	"errors"
	"strings"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/mapper"

	"go.uber.org/zap"
)

const (
	passwordMin  = 8
	ordersLimit  = 50
	duplicateKey = "DuplicateField"
)

type customerRepo interface {
	SignUp(ctx context.Context, draft commercetools.CustomerDraft) (*commercetools.Customer, error)
	SignIn(ctx context.Context, email, password, anonymousCartID string) (*commercetools.CustomerSignInResult, error)
	GetByID(ctx context.Context, id string) (*commercetools.Customer, error)
}

type orderLedger interface {
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error)
}

// Service handles customer signup and login flows. Credentials are checked
// by the platform.
type Service struct {
	repo   customerRepo
	ledger orderLedger
	logger *zap.Logger
}

// New builds the customer service. ledger may be nil when no database is
// configured.
func New(repo customerRepo, ledger orderLedger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, ledger: ledger, logger: logger}
}

// Result is a sign-in outcome plus the session changes to issue.
type Result struct {
	SignIn domain.SignInResult
	Patch  domain.Patch
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
}

// SignUp registers a customer and signs them in. The anonymous cart is not
// merged on signup.
func (s *Service) SignUp(ctx context.Context, loc string, in SignupInput) (*Result, error) {
	email := normalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	if email == "" || in.Password == "" || firstName == "" {
		return nil, domain.Invalid("email, password, and name are required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	created, err := s.repo.SignUp(ctx, commercetools.CustomerDraft{
		Email:     email,
		Password:  in.Password,
		FirstName: firstName,
	})
	if err != nil {
		var apiErr *commercetools.APIError
		if errors.As(err, &apiErr) && apiErr.Code() == duplicateKey {
			return nil, domain.Invalid("an account with this email already exists")
		}
		s.logger.Error("customer signup failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("customer signed up", zap.String("customerId", created.ID))

	return s.signIn(ctx, loc, email, in.Password, "")
}

// SigninInput captures login credentials.
type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn authenticates the customer and merges the session's cart for loc
// into the customer's cart. Any failure is reported as invalid credentials.
func (s *Service) SignIn(ctx context.Context, sess domain.Session, loc string, in SigninInput) (*Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email and password are required")
	}
	return s.signIn(ctx, loc, email, in.Password, sess.CartFor(loc))
}

func (s *Service) signIn(ctx context.Context, loc, email, password, anonymousCartID string) (*Result, error) {
	res, err := s.repo.SignIn(ctx, email, password, anonymousCartID)
	if err != nil {
		s.logger.Warn("customer signin failed", zap.String("email", email), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	s.logger.Info("customer signed in",
		zap.String("customerId", res.Customer.ID), zap.Bool("cartMerged", anonymousCartID != ""))

	out := &Result{
		SignIn: domain.SignInResult{Customer: mapCustomer(res.Customer)},
		Patch:  domain.Patch{}.SetCustomer(res.Customer.ID).ClearAnonymous(),
	}
	if res.Cart != nil {
		cart := mapper.MapCart(*res.Cart, loc)
		out.SignIn.Cart = &cart
		out.Patch = out.Patch.SetCart(loc, res.Cart.ID)
	}
	return out, nil
}

// Me returns the signed-in customer.
func (s *Service) Me(ctx context.Context, sess domain.Session) (*domain.Customer, error) {
	if sess.CustomerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	c, err := s.repo.GetByID(ctx, sess.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		s.logger.Error("get customer failed", zap.String("customerId", sess.CustomerID), zap.Error(err))
		return nil, err
	}
	out := mapCustomer(*c)
	return &out, nil
}

// Orders lists the signed-in customer's orders recorded by this service,
// newest first. Without a ledger the list is empty.
func (s *Service) Orders(ctx context.Context, sess domain.Session) ([]domain.PlacedOrder, error) {
	if sess.CustomerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if s.ledger == nil {
		return []domain.PlacedOrder{}, nil
	}
	orders, err := s.ledger.ListByCustomer(ctx, sess.CustomerID, ordersLimit)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.PlacedOrder{}
	}
	return orders, nil
}

// SignOut returns the patch that drops the customer, the anonymous identity
// and every cart reference.
func (s *Service) SignOut(sess domain.Session) domain.Patch {
	return domain.Patch{}.ClearCustomer().ClearAnonymous().ClearAllCarts(sess)
}

func mapCustomer(c commercetools.Customer) domain.Customer {
	return domain.Customer{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		Version:   c.Version,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(p string) error {
	if len(p) < passwordMin {
		return domain.Invalid("password must be at least 8 characters")
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Invalid("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
