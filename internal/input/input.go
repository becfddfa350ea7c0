package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// Stdin is the file name that reads standard input.
const Stdin = "-"

var (
	// ErrDecode indicates a document stream could not be read or parsed.
	ErrDecode = errors.New("decode error")

	// ErrNarrow indicates an invalid pointer or JSONPath expression.
	ErrNarrow = errors.New("narrow error")

	// ErrNotFound indicates a pointer or JSONPath expression selected nothing.
	ErrNotFound = errors.New("not found")
)

// Document is one decoded YAML or JSON document.
type Document struct {
	Source string
	Index  int
	Value  any
}

// Name identifies the document in output headers.
func (d Document) Name() string {
	if d.Index == 0 {
		return d.Source
	}
	return fmt.Sprintf("%s#%d", d.Source, d.Index)
}

// Decode reads every document of the stream in r. JSON is accepted as it is
// valid YAML.
func Decode(r io.Reader, source string) ([]Document, error) {
	decoder := yaml.NewDecoder(r)

	var docs []Document
	for {
		var value any
		err := decoder.Decode(&value)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, source, err)
		}
		docs = append(docs, Document{Source: source, Index: len(docs), Value: value})
	}

	return docs, nil
}

// Load decodes each file in order. No files, or the name "-", reads stdin.
func Load(files []string, stdin io.Reader) ([]Document, error) {
	if len(files) == 0 {
		files = []string{Stdin}
	}

	var docs []Document
	for _, file := range files {
		loaded, err := load(file, stdin)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}

	return docs, nil
}

func load(file string, stdin io.Reader) ([]Document, error) {
	if file == Stdin {
		return Decode(stdin, "stdin")
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	return Decode(f, file)
}
