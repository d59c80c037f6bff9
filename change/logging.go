package change

import (
	"context"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"
	"go-change-maker/domain"
	"strconv"
	"time"
)

// loggingService decorates a change.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) MakeChange(ctx context.Context, amount decimal.Decimal) (change domain.Change, err error) {
	defer func(begin time.Time) {
		level.Info(s.logger).Log(
			"method", "make_change",
			"amount", amount,
			"lines", len(change),
			"change", formatChange(change),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.MakeChange(ctx, amount)
}

// formatChange renders change compactly for log lines, e.g. "3 quarters, 4 pennies"
func formatChange(change domain.Change) string {
	s := ""
	for i, line := range change {
		if i > 0 {
			s += ", "
		}
		s += strconv.FormatInt(line.Count, 10) + " " + line.Name
	}
	return s
}
