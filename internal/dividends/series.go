package dividends

import (
	"sort"
	"time"
)

// Payment is a single dividend payment.
type Payment struct {
	Date   time.Time
	Amount float64
}

// Series is a dividend history ordered ascending by date. The zero value is
// an empty series.
type Series struct {
	payments []Payment
}

// NewSeries copies payments and sorts them by date. Payments sharing a date
// keep their relative order.
func NewSeries(payments []Payment) Series {
	cp := make([]Payment, len(payments))
	copy(cp, payments)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Date.Before(cp[j].Date)
	})
	return Series{payments: cp}
}

// Len returns the number of payments.
func (s Series) Len() int { return len(s.payments) }

// Empty reports whether the series has no payments.
func (s Series) Empty() bool { return len(s.payments) == 0 }

// First returns the earliest payment.
func (s Series) First() (Payment, bool) {
	if len(s.payments) == 0 {
		return Payment{}, false
	}
	return s.payments[0], true
}

// Last returns the latest payment.
func (s Series) Last() (Payment, bool) {
	if len(s.payments) == 0 {
		return Payment{}, false
	}
	return s.payments[len(s.payments)-1], true
}

// Payments returns a copy of the payments in date order.
func (s Series) Payments() []Payment {
	cp := make([]Payment, len(s.payments))
	copy(cp, s.payments)
	return cp
}

// Amounts returns the payment amounts in date order.
func (s Series) Amounts() []float64 {
	out := make([]float64, len(s.payments))
	for i, p := range s.payments {
		out[i] = p.Amount
	}
	return out
}

// Since returns the payments dated at or after t.
func (s Series) Since(t time.Time) Series {
	i := sort.Search(len(s.payments), func(i int) bool {
		return !s.payments[i].Date.Before(t)
	})
	return Series{payments: s.payments[i:]}
}

// Tail returns at most the n most recent payments.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s.payments) {
		return s
	}
	return Series{payments: s.payments[len(s.payments)-n:]}
}
