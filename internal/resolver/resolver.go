package resolver

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jacoelho/propath/internal/collection"
	"github.com/jacoelho/propath/internal/filter"
	"github.com/jacoelho/propath/internal/member"
	"github.com/jacoelho/propath/internal/processor"
	"github.com/jacoelho/propath/internal/segment"
	"github.com/jacoelho/propath/internal/substitute"
)

// TokenPriority is the priority of the built-in placeholder substitution.
// Processors registered above it see raw segments, those below it see
// substituted ones.
const TokenPriority = 0

type options struct {
	logger    *slog.Logger
	evaluator *filter.Evaluator
	tokens    map[string]any
}

type Option func(*options)

// WithLogger reports swallowed failures at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEvaluator replaces the filter expression evaluator.
func WithEvaluator(evaluator *filter.Evaluator) Option {
	return func(o *options) {
		o.evaluator = evaluator
	}
}

// WithTokens sets the initial placeholder values.
func WithTokens(tokens map[string]any) Option {
	return func(o *options) {
		o.tokens = tokens
	}
}

// Resolver resolves paths against targets. Configure it before use; after
// that it may be shared between goroutines.
type Resolver struct {
	logger   *slog.Logger
	pipeline *processor.Pipeline
	filter   *filter.Evaluator
	tokens   *substitute.Processor
}

func New(opts ...Option) *Resolver {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.evaluator == nil {
		o.evaluator = filter.New(o.logger)
	}

	r := &Resolver{
		logger:   o.logger,
		pipeline: processor.New(),
		filter:   o.evaluator,
		tokens:   substitute.NewProcessor(o.tokens, o.logger),
	}
	r.pipeline.Add(r.tokens, processor.PhaseSegment, TokenPriority)

	return r
}

// AddProcessor registers p for phase and returns the resolver for chaining.
// Higher priorities run first.
func (r *Resolver) AddProcessor(p processor.Processor, phase processor.Phase, priority int) *Resolver {
	r.pipeline.Add(p, phase, priority)
	return r
}

// SetTokenData sets the value substituted for {{ .key }} placeholders.
func (r *Resolver) SetTokenData(key string, value any) {
	r.tokens.Set(key, value)
}

// Resolve returns the value at path inside target, or def wherever the path
// cannot be followed. path is a dotted string or a pre-split []string; an
// empty path returns target itself. A def of type func() any is called each
// time a default is needed.
func (r *Resolver) Resolve(target any, path any, def any) any {
	segments := segment.Tokenize(path)
	if len(segments) == 0 {
		return target
	}
	return r.resolve(target, segments, def)
}

func (r *Resolver) resolve(target any, segments []string, def any) any {
	for i, raw := range segments {
		rest := segments[i+1:]

		if segment.IsWildcard(raw) {
			return r.fanOut(target, rest, def)
		}

		seg := r.pipeline.Run(processor.PhaseSegment, raw)

		if bracket, ok := segment.Detect(seg); ok {
			matched, err := r.filter.Select(target, bracket.Interior)
			if err != nil {
				r.debug("filter target", seg, err)
				return valueOf(def)
			}
			return r.fanOut(matched, rest, def)
		}

		target = r.access(target, seg, def)
	}

	return target
}

// fanOut resolves rest against every element of target. The results are
// flattened when rest itself can fan out again.
func (r *Resolver) fanOut(target any, rest []string, def any) any {
	entries, err := collection.Of(target)
	if err != nil {
		r.debug("fan out", segment.Wildcard, err)
		return valueOf(def)
	}

	results := make([]any, len(entries))
	for i, entry := range entries {
		results[i] = r.resolve(entry.Value, rest, def)
	}

	if segment.ContainsWildcard(rest) || segment.HasBracket(rest) {
		return collection.Collapse(results)
	}
	return results
}

// access reads seg as a property, retrying it as an index when the target
// has no such property.
func (r *Resolver) access(target any, seg string, def any) any {
	if !member.Accessible(target) {
		return valueOf(def)
	}

	value, err := member.Get(target, seg)
	if errors.Is(err, member.ErrNoSuchProperty) {
		value, err = member.Index(target, seg)
	}
	if err != nil {
		r.debug("access", seg, err)
		return valueOf(def)
	}

	return value
}

func (r *Resolver) debug(step, seg string, err error) {
	r.logger.Debug("path step fell back to default",
		slog.String("step", step),
		slog.String("segment", seg),
		slog.String("error", err.Error()),
	)
}

func valueOf(def any) any {
	if f, ok := def.(func() any); ok {
		return f()
	}
	return def
}

var std = New()

// Resolve resolves path against target with a resolver that has no tokens
// or extra processors.
func Resolve(target any, path any, def any) any {
	return std.Resolve(target, path, def)
}
