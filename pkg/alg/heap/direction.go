package heap

import (
	"cmp"
	"fmt"
	"strings"
)

// Direction selects which end of the ordering sits at the root.
type Direction string

// Supported directions.
const (
	Min Direction = "min"
	Max Direction = "max"
)

// ParseDirection converts a textual direction tag into a Direction.
func ParseDirection(s string) (Direction, error) {
	dir := Direction(strings.TrimSpace(s))

	switch dir {
	case Min, Max:
		return dir, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// String returns the direction tag.
func (d Direction) String() string {
	return string(d)
}

func orderFor[T cmp.Ordered](dir Direction) (func(a, b T) bool, error) {
	switch dir {
	case Min:
		return cmp.Less[T], nil
	case Max:
		return greater[T], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, string(dir))
	}
}
