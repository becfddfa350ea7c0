package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/propath/internal/collection"
)

type model struct {
	value any
}

func (m *model) GetValue() any { return m.value }

type wrapper struct {
	Value string
	Count int
}

// valModel has a pointer receiver getter but is stored by value.
type valModel struct {
	value string
}

func (m *valModel) GetValue() string { return m.value }

type tagged struct {
	DisplayName string `json:"display_name"`
	Enabled     bool
}

func (t tagged) IsActive() bool { return t.Enabled }

type failing struct{}

func (failing) Broken() (any, error) { return nil, errors.New("broken getter") }

func TestSelect(t *testing.T) {
	t.Parallel()

	x, y := &model{value: "X"}, &model{value: "Y"}

	tests := []struct {
		name       string
		target     any
		expression string
		want       collection.Entries
	}{
		{
			name:       "struct field",
			target:     []wrapper{{Value: "A"}, {Value: "B"}, {Value: "B", Count: 1}},
			expression: `Value == "B"`,
			want: collection.Entries{
				{Key: 1, Value: wrapper{Value: "B"}},
				{Key: 2, Value: wrapper{Value: "B", Count: 1}},
			},
		},
		{
			name:       "method call",
			target:     []*model{x, y},
			expression: `GetValue()=="Y"`,
			want:       collection.Entries{{Key: 1, Value: y}},
		},
		{
			name:       "lower case field name",
			target:     []wrapper{{Value: "A"}, {Value: "B"}, {Value: "C"}},
			expression: `value=="B"`,
			want:       collection.Entries{{Key: 1, Value: wrapper{Value: "B"}}},
		},
		{
			name:       "lower case method call",
			target:     []*model{x, y},
			expression: `getValue()=="X"`,
			want:       collection.Entries{{Key: 0, Value: x}},
		},
		{
			name:       "getter read as property",
			target:     []*model{x, y},
			expression: `value=="Y"`,
			want:       collection.Entries{{Key: 1, Value: y}},
		},
		{
			name:       "pointer receiver getter on struct values",
			target:     []valModel{{value: "X"}, {value: "Y"}},
			expression: `GetValue()=="X"`,
			want:       collection.Entries{{Key: 0, Value: valModel{value: "X"}}},
		},
		{
			name:       "tag name and is prefix",
			target:     []tagged{{DisplayName: "Ada", Enabled: true}, {DisplayName: "Grace"}},
			expression: `display_name != "" && active`,
			want:       collection.Entries{{Key: 0, Value: tagged{DisplayName: "Ada", Enabled: true}}},
		},
		{
			name:       "missing struct member is nil",
			target:     []wrapper{{Value: "A"}},
			expression: `missing == nil`,
			want:       collection.Entries{{Key: 0, Value: wrapper{Value: "A"}}},
		},
		{
			name: "nested members and computed index",
			target: []any{
				map[string]any{"owner": map[string]any{"name": "Ada"}, "tags": []any{"x"}},
				map[string]any{"owner": &wrapper{Value: "Linus"}, "tags": []any{"y"}},
			},
			expression: `owner.value == "Linus" && tags[0] == "y"`,
			want: collection.Entries{{Key: 1, Value: map[string]any{
				"owner": &wrapper{Value: "Linus"},
				"tags":  []any{"y"},
			}}},
		},
		{
			name:       "membership operator",
			target:     []wrapper{{Value: "A"}, {Value: "B"}},
			expression: `Value in ["B", "C"]`,
			want:       collection.Entries{{Key: 1, Value: wrapper{Value: "B"}}},
		},
		{
			name:       "map elements",
			target:     []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
			expression: `name == "b"`,
			want:       collection.Entries{{Key: 1, Value: map[string]any{"name": "b"}}},
		},
		{
			name:       "map target keeps keys",
			target:     map[string]any{"b": map[string]any{"on": false}, "a": map[string]any{"on": true}},
			expression: "on",
			want:       collection.Entries{{Key: "a", Value: map[string]any{"on": true}}},
		},
		{
			name:       "scalars",
			target:     []int{1, 2, 3},
			expression: "scalar > 1",
			want:       collection.Entries{{Key: 1, Value: 2}, {Key: 2, Value: 3}},
		},
		{
			name:       "object binding in compound expression",
			target:     []wrapper{{Value: "A", Count: 2}, {Value: "B", Count: 2}, {Value: "B"}},
			expression: `Value == "B" && object.Count > 1`,
			want:       collection.Entries{{Key: 1, Value: wrapper{Value: "B", Count: 2}}},
		},
		{
			name:       "element errors exclude only that element",
			target:     []any{wrapper{Value: "B"}, map[string]any{"Other": 1}, 5},
			expression: `Value == "B"`,
			want:       collection.Entries{{Key: 0, Value: wrapper{Value: "B"}}},
		},
		{
			name:       "empty collections are falsy",
			target:     []any{map[string]any{"tags": []any{}}, map[string]any{"tags": []any{"x"}}},
			expression: "tags",
			want:       collection.Entries{{Key: 1, Value: map[string]any{"tags": []any{"x"}}}},
		},
		{
			name:       "invalid expression matches nothing",
			target:     []int{1, 2},
			expression: "scalar ==",
			want:       collection.Entries{},
		},
		{
			name:       "no matches",
			target:     []wrapper{{Value: "A"}},
			expression: `Value == "Z"`,
			want:       collection.Entries{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New(nil).Select(tt.target, tt.expression)
			if err != nil {
				t.Fatalf("Select(%q) error = %v", tt.expression, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(model{}, valModel{})); diff != "" {
				t.Fatalf("Select(%q) mismatch (-want +got):\n%s", tt.expression, diff)
			}
		})
	}
}

func TestSelectNotIterable(t *testing.T) {
	t.Parallel()

	for _, target := range []any{nil, "abc", 3, wrapper{}} {
		if _, err := New(nil).Select(target, "true"); !errors.Is(err, collection.ErrNotIterable) {
			t.Errorf("Select(%#v) error = %v, want ErrNotIterable", target, err)
		}
	}
}

func TestEval(t *testing.T) {
	t.Parallel()

	e := New(nil)

	got, err := e.Eval("scalar + 1", 2)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if got != 3 {
		t.Fatalf("Eval() = %v, want 3", got)
	}

	if _, err := e.Eval("scalar +", 2); !errors.Is(err, ErrEvaluation) {
		t.Fatalf("Eval() compile error = %v, want ErrEvaluation", err)
	}

	if _, err := e.Eval("Broken()", failing{}); !errors.Is(err, ErrEvaluation) {
		t.Fatalf("Eval() runtime error = %v, want ErrEvaluation", err)
	}

	got, err = e.Eval("missing", wrapper{})
	if err != nil || got != nil {
		t.Fatalf("Eval(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestCompileIsCached(t *testing.T) {
	t.Parallel()

	e := New(nil)
	for range 3 {
		if _, err := e.Select([]int{1}, "scalar == 1"); err != nil {
			t.Fatalf("Select() error = %v", err)
		}
	}

	if len(e.programs) != 1 {
		t.Fatalf("cached programs = %d, want 1", len(e.programs))
	}
}
