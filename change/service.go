package change

import (
	"context"
	"fmt"
	"github.com/shopspring/decimal"
	"go-change-maker/domain"
)

// Service interface for making change out of a dollar amount
type Service interface {
	MakeChange(ctx context.Context, amount decimal.Decimal) (domain.Change, error)
}

// service makes change with the fixed coin denominations
type service struct{}

// NewService constructs a valid Service
func NewService() Service {
	return &service{}
}

// MakeChange converts amount to cents and decomposes it into coins.
// Negative amounts, and amounts too large to count in cents, fail with domain.ErrInvalidAmount.
func (s *service) MakeChange(_ context.Context, amount decimal.Decimal) (domain.Change, error) {
	cents, err := domain.ToCents(amount)
	if err != nil {
		return nil, fmt.Errorf("make change [%v]: %w", amount, err)
	}
	return Decompose(cents), nil
}
