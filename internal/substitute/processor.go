package substitute

import (
	"io"
	"log/slog"
	"maps"
	"sync"
)

// Processor substitutes placeholders in path segments with its token data.
// A segment that fails to render is passed through unchanged.
type Processor struct {
	logger *slog.Logger

	mu   sync.RWMutex
	data map[string]any
}

// NewProcessor copies data; a nil logger discards failures.
func NewProcessor(data map[string]any, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Processor{
		logger: logger,
		data:   make(map[string]any, len(data)),
	}
	maps.Copy(p.data, data)

	return p
}

// Set stores the token value for key, replacing any previous value.
func (p *Processor) Set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.data[key] = value
}

func (p *Processor) Process(segment string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out, err := Apply(segment, p.data)
	if err != nil {
		p.logger.Debug("segment substitution failed",
			slog.String("segment", segment),
			slog.String("error", err.Error()),
		)
		return segment
	}

	return out
}
