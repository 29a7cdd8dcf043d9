package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by catalog generation. Only image acquisition
// failures are absorbed; everything else stops the build.
var (
	ErrInput            = errors.New("invalid catalog input")
	ErrImageAcquisition = errors.New("image acquisition failed")
	ErrRender           = errors.New("catalog render failed")
	ErrSerialization    = errors.New("catalog serialization failed")
)

// Input errors callers can match on directly.
var (
	ErrNoProducts      = fmt.Errorf("%w: no products selected", ErrInput)
	ErrInvalidSettings = fmt.Errorf("%w: invalid settings", ErrInput)
	ErrInvalidProduct  = fmt.Errorf("%w: invalid product", ErrInput)
)
