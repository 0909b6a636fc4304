package keymap

import (
	"fmt"
)

// Default grid normalization settings.
const (
	DefaultThumbShiftIn   = 1
	DefaultNumberOfThumbs = 1
)

// GridOptions configures [Normalize].
type GridOptions struct {
	// ThumbShiftIn is the number of gap pairs inserted at the centre of every
	// non-thumb row.
	ThumbShiftIn int

	// NumberOfThumbs is the number of trailing rows treated as thumb rows and
	// left out of the centre insertion.
	NumberOfThumbs int
}

// DefaultGridOptions returns the default grid settings.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		ThumbShiftIn:   DefaultThumbShiftIn,
		NumberOfThumbs: DefaultNumberOfThumbs,
	}
}

// Validate rejects negative counts.
func (o GridOptions) Validate() error {
	if o.ThumbShiftIn < 0 {
		return fmt.Errorf("%w: thumb shift-in must be non-negative, got %d", ErrInvalidOptions, o.ThumbShiftIn)
	}
	if o.NumberOfThumbs < 0 {
		return fmt.Errorf("%w: number of thumb rows must be non-negative, got %d", ErrInvalidOptions, o.NumberOfThumbs)
	}
	return nil
}
