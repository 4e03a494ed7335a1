package engine

import "fmt"

// InvalidAwardError is returned when an XP award is zero or negative.
// No state is mutated when it is returned.
type InvalidAwardError struct {
	Amount int
}

func (e InvalidAwardError) Error() string {
	return fmt.Sprintf("invalid xp award %d: amount must be positive", e.Amount)
}

// UnknownCategoryError indicates a category outside the fixed set.
// Categories are controlled internally, so this is a programming error;
// it fails loudly instead of silently dropping the contribution.
type UnknownCategoryError struct {
	Category Category
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %q", string(e.Category))
}
