package formstate

import "github.com/goliatone/go-formstate/pkg/validation"

// Observer receives controller activity. Implementations must be safe for
// concurrent use since settle notifications arrive on timer goroutines.
type Observer interface {
	ObserveEdit(fieldID string, result validation.Result)
	ObserveSettle(fieldID string)
	ObserveReadiness(ready bool)
}

type nopObserver struct{}

func (nopObserver) ObserveEdit(string, validation.Result) {}
func (nopObserver) ObserveSettle(string)                  {}
func (nopObserver) ObserveReadiness(bool)                 {}
