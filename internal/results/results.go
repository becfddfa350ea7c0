package results

// Result is the outcome of resolving a path against one document.
type Result struct {
	Source string
	Value  any
	Error  error
}

type ResultBuilder struct {
	source string
	value  any
	err    error
}

func NewResultBuilder(source string) *ResultBuilder {
	return &ResultBuilder{
		source: source,
	}
}

func (b *ResultBuilder) WithValue(value any) *ResultBuilder {
	b.value = value
	return b
}

func (b *ResultBuilder) WithError(err error) *ResultBuilder {
	b.err = err
	return b
}

func (b *ResultBuilder) Build() Result {
	return Result{
		Source: b.source,
		Value:  b.value,
		Error:  b.err,
	}
}

// Summary collects the results of one invocation in document order.
type Summary struct {
	Results  []Result
	Resolved int
	Failed   int
}

func NewSummary(expectedDocuments int) *Summary {
	return &Summary{
		Results: make([]Result, 0, expectedDocuments),
	}
}

func (s *Summary) Add(result Result) {
	s.Results = append(s.Results, result)
	if result.Error != nil {
		s.Failed++
	} else {
		s.Resolved++
	}
}

// HasFailures reports whether any document could not be resolved.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// Multiple reports whether output needs per document headers.
func (s *Summary) Multiple() bool {
	return len(s.Results) > 1
}
