package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/jacoelho/propath/internal/formatter"
	"github.com/jacoelho/propath/internal/results"
)

// Formatter writes resolved values to a stream, one section per document.
type Formatter struct {
	writer   io.Writer
	encoding formatter.Encoding
	header   *color.Color
	failure  *color.Color
}

// New creates a formatter that outputs to stdout.
func New(encoding formatter.Encoding, colored bool) formatter.Formatter {
	return NewWithWriter(os.Stdout, encoding, colored)
}

// NewWithWriter creates a formatter with a custom writer.
// This is useful for testing or redirecting output to files.
func NewWithWriter(writer io.Writer, encoding formatter.Encoding, colored bool) formatter.Formatter {
	header := color.New(color.FgCyan)
	failure := color.New(color.FgRed)
	if colored {
		header.EnableColor()
		failure.EnableColor()
	} else {
		header.DisableColor()
		failure.DisableColor()
	}

	return &Formatter{
		writer:   writer,
		encoding: encoding,
		header:   header,
		failure:  failure,
	}
}

// Format prints each value; a "# <source>" header precedes every section
// when the summary holds more than one document.
func (f *Formatter) Format(summary *results.Summary) error {
	for _, result := range summary.Results {
		if summary.Multiple() {
			if _, err := fmt.Fprintln(f.writer, f.header.Sprint("# "+result.Source)); err != nil {
				return err
			}
		}

		if result.Error != nil {
			if _, err := fmt.Fprintln(f.writer, f.failure.Sprintf("# error: %v", result.Error)); err != nil {
				return err
			}
			continue
		}

		if err := f.encode(result.Value); err != nil {
			return fmt.Errorf("%s: %w", result.Source, err)
		}
	}

	return nil
}

func (f *Formatter) encode(value any) error {
	var (
		payload []byte
		err     error
	)

	switch f.encoding {
	case formatter.YAML:
		payload, err = yaml.Marshal(value)
	default:
		payload, err = json.MarshalIndent(value, "", "  ")
		payload = append(payload, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.encoding, err)
	}

	_, err = f.writer.Write(payload)
	return err
}
