package rates

import (
	"context"
)

// Rate is an hourly billing rate.
type Rate struct {
	PerHour  float64
	Currency string
}

// Store resolves the contract hourly rate for an employee. Used by the
// monthly rollup when the detail sheet carries no rate of its own.
type Store interface {
	GetEmployeeRate(ctx context.Context, employee string) Rate
}

type rateStore struct {
	table       map[string]float64
	defaultRate float64
}

// NewStore builds a rate store over a fixed employee rate table. Employees
// missing from the table fall back to defaultRate.
func NewStore(table map[string]float64, defaultRate float64) Store {
	return &rateStore{table: table, defaultRate: defaultRate}
}

func (s *rateStore) GetEmployeeRate(_ context.Context, employee string) Rate {
	if rate, ok := s.table[employee]; ok {
		return Rate{PerHour: rate, Currency: "USD"}
	}
	return Rate{PerHour: s.defaultRate, Currency: "USD"}
}
