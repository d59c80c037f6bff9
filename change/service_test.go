package change

import (
	"context"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go-change-maker/domain"
	"reflect"
	"sync"
	"testing"
)

func TestService_MakeChange(t *testing.T) {
	service := NewService()

	tests := []struct {
		name    string
		amount  string
		want    domain.Change
		wantErr bool
	}{
		{"0.41", "0.41", domain.Change{{Count: 1, Name: "quarters"}, {Count: 1, Name: "dimes"}, {Count: 1, Name: "nickels"}, {Count: 1, Name: "pennies"}}, false},
		{"0.99", "0.99", domain.Change{{Count: 3, Name: "quarters"}, {Count: 2, Name: "dimes"}, {Count: 4, Name: "pennies"}}, false},
		{"0.00", "0.00", domain.Change{}, false},
		{"0.07", "0.07", domain.Change{{Count: 1, Name: "nickels"}, {Count: 2, Name: "pennies"}}, false},
		{"1.00", "1.00", domain.Change{{Count: 4, Name: "quarters"}}, false},
		{"0.1", "0.1", domain.Change{{Count: 1, Name: "dimes"}}, false},
		{"0.2", "0.2", domain.Change{{Count: 2, Name: "dimes"}}, false},
		{"0.29", "0.29", domain.Change{{Count: 1, Name: "quarters"}, {Count: 4, Name: "pennies"}}, false},
		{"negative", "-0.50", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.MakeChange(context.Background(), decimal.RequireFromString(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Errorf("MakeChange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MakeChange() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_MakeChangeFromFloat(t *testing.T) {
	amount, err := domain.AmountFromFloat(0.1 + 0.2)
	assert.NoError(t, err)

	got, err := NewService().MakeChange(context.Background(), amount)

	assert.NoError(t, err)
	assert.Equal(t, domain.Change{{Count: 1, Name: "quarters"}, {Count: 1, Name: "nickels"}}, got)
}

func TestService_MakeChangeConcurrent(t *testing.T) {
	service := NewService()
	want := Decompose(4199)

	var wg sync.WaitGroup
	results := make([]domain.Change, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.MakeChange(context.Background(), decimal.RequireFromString("41.99"))
		}(i)
	}
	wg.Wait()

	for i := range results {
		assert.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
