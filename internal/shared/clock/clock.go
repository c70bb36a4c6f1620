// Package clock supplies "today" to the personnel rules so date logic can be pinned in tests.
package clock

import (
	"time"

	"go-personnel/internal/domain"
)

type Clock interface {
	Now() time.Time
	Today() time.Time
}

type System struct{}

func (System) Now() time.Time   { return time.Now().UTC() }
func (System) Today() time.Time { return domain.DateOnly(time.Now().UTC()) }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time   { return f.T }
func (f Fixed) Today() time.Time { return domain.DateOnly(f.T) }

// Or returns c, or System when c is nil.
func Or(c Clock) Clock {
	if c == nil {
		return System{}
	}
	return c
}
