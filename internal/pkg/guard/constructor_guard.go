// Package guard provides a small helper for enforcing constructor usage on
// domain objects. Embedding a ConstructorGuard as a private field makes the
// zero value of the enclosing type detectably invalid, so objects that were
// not created through their factory function fail validation instead of
// silently carrying unchecked state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and no custom error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value is invalid; NewConstructorGuard produces a valid guard.
//
// Example:
//
//	type Money struct {
//	    amount int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int) Money {
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(errMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructed, or
// ErrDefaultConstructorGuard when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
