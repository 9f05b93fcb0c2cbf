// Package alias validates public handle values against the shared length
// and character-set constraints.
package alias

import (
	"fmt"
	"regexp"

	"github.com/drifthq/drift/internal/domain"
)

// Alias constraints.
const (
	MinLength = 3
	MaxLength = 32
)

var pattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// Validate checks an alias value. Violations surface as field-level
// validation errors on the "alias" field.
func Validate(v string) error {
	if len(v) < MinLength {
		return domain.NewValidation("alias", "min_length",
			fmt.Sprintf("must be at least %d characters", MinLength))
	}
	if len(v) > MaxLength {
		return domain.NewValidation("alias", "max_length",
			fmt.Sprintf("must be at most %d characters", MaxLength))
	}
	if !pattern.MatchString(v) {
		return domain.NewValidation("alias", "invalid",
			"does not match the required pattern")
	}
	return nil
}
