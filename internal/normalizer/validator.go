package normalizer

import (
	"errors"

	"wureport/internal/models"
)

// Validation errors.
var (
	ErrMissingFamily = errors.New("entry missing OS family")
	ErrMissingTitle  = errors.New("entry missing title")
	ErrMissingDate   = errors.New("entry missing release date")
)

// Validator checks raw entries before transformation.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that a raw entry carries the fields the report needs.
func (v *Validator) Validate(e models.RawEntry) error {
	if e.Family == "" {
		return ErrMissingFamily
	}

	if e.Title == "" {
		return ErrMissingTitle
	}

	if e.Date == "" {
		return ErrMissingDate
	}

	return nil
}
