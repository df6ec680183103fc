package cli

import (
	"fmt"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

// DefaultMaxDimension matches the MAX_BOARD_DIMENSION default of the server.
const DefaultMaxDimension = 32

type settings struct {
	maxDimension int
}

// Option configures a REPL or Controller.
type Option func(*settings)

// WithMaxDimension caps board width and height. Zero or less removes the cap.
func WithMaxDimension(n int) Option {
	return func(s *settings) {
		s.maxDimension = n
	}
}

func newSettings(opts []Option) settings {
	s := settings{maxDimension: DefaultMaxDimension}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// checkDimensions runs before any board is allocated.
func (s settings) checkDimensions(width, height float64) error {
	if limit := float64(s.maxDimension); limit > 0 && (width > limit || height > limit) {
		return fmt.Errorf("%w: at most %d", domain.ErrInvalidDimension, s.maxDimension)
	}
	return nil
}
