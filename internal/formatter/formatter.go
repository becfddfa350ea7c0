package formatter

import (
	"errors"
	"fmt"

	"github.com/jacoelho/propath/internal/results"
)

// Encoding names a value encoding.
type Encoding string

const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// ParseEncoding validates an encoding name.
func ParseEncoding(name string) (Encoding, error) {
	switch e := Encoding(name); e {
	case JSON, YAML:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownEncoding, name, JSON, YAML)
	}
}

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device.
type Formatter interface {
	// Format writes every result of the summary in document order.
	Format(summary *results.Summary) error
}
