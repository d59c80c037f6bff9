package change

import (
	"bytes"
	"context"
	"errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go-change-maker/domain"
	"testing"
)

type mock struct {
	change domain.Change
	err    error
}

func (m *mock) MakeChange(_ context.Context, _ decimal.Decimal) (domain.Change, error) {
	return m.change, m.err
}

func TestLoggingService_MakeChange(t *testing.T) {
	var buf bytes.Buffer
	next := &mock{change: domain.Change{{Count: 3, Name: "quarters"}, {Count: 4, Name: "pennies"}}}
	s := NewLoggingService(log.NewLogfmtLogger(&buf), next)

	got, err := s.MakeChange(context.Background(), decimal.RequireFromString("0.79"))

	assert.NoError(t, err)
	assert.Equal(t, next.change, got)
	assert.Contains(t, buf.String(), "method=make_change")
	assert.Contains(t, buf.String(), "amount=0.79")
	assert.Contains(t, buf.String(), `change="3 quarters, 4 pennies"`)
	assert.Contains(t, buf.String(), "err=null")
	assert.Contains(t, buf.String(), "level=info")
}

func TestLoggingService_MakeChangeFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowWarn())
	s := NewLoggingService(logger, &mock{change: domain.Change{{Count: 1, Name: "pennies"}}})

	_, err := s.MakeChange(context.Background(), decimal.RequireFromString("0.01"))

	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestLoggingService_MakeChangeError(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), &mock{err: errors.New("boom")})

	_, err := s.MakeChange(context.Background(), decimal.RequireFromString("1"))

	assert.EqualError(t, err, "boom")
	assert.Contains(t, buf.String(), "err=boom")
}
