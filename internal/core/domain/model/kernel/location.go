package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation to ensure
// both the name and the address are present.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location identifies a pickup or delivery point by its display name and
// street address. Location is an immutable value object; the zero value is
// invalid and fails validation, so instances must come from the constructor.
//
// Example:
//
//	loc, err := kernel.NewLocation("Central Warehouse", "Jl. Raya Bekasi KM 20, Jakarta Timur")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: Central Warehouse (Jl. Raya Bekasi KM 20, Jakarta Timur)
type Location struct {
	name    string
	address string
	guard   guard.ConstructorGuard
}

// NewLocation creates a Location with the given display name and address.
// Both values are required; empty strings produce a validation error.
func NewLocation(name string, address string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setName(name), loc.setAddress(address)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created through NewLocation.
// The zero value fails with ErrLocationIsNotConstructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Name returns the human-readable name of the location.
func (l Location) Name() string {
	return l.name
}

// Address returns the street address of the location.
func (l Location) Address() string {
	return l.address
}

// IsEqual reports whether two locations refer to the same named address.
func (l Location) IsEqual(other Location) bool {
	return l.name == other.name && l.address == other.address
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("%s (%s)", l.name, l.address)
}

func (l *Location) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *Location) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	l.address = address
	return nil
}
