package member

import (
	"errors"
	"testing"
)

type person struct {
	Name     string `json:"full_name"`
	Nickname string `yaml:"nick"`
	Email    string `json:"-"`
	age      int
}

func (p person) Age() int { return p.age }

func (p *person) GetTitle() string { return "Dr. " + p.Name }

func (p person) IsAdult() bool { return p.age >= 18 }

func (p person) HasFailure() (string, error) { return "", errors.New("boom") }

func (p person) Greeting(greeting string) string { return greeting + " " + p.Name }

type audited struct {
	person
	Revision int
}

type bag map[string]any

type registry struct {
	Name  string
	items map[string]any
}

func (r *registry) Lookup(key string) (any, bool) {
	v, ok := r.items[key]
	return v, ok
}

func TestGet(t *testing.T) {
	t.Parallel()

	ada := person{Name: "Ada", Nickname: "countess", Email: "ada@example.com", age: 36}

	tests := []struct {
		name    string
		target  any
		member  string
		want    any
		wantErr error
	}{
		{name: "field", target: ada, member: "Name", want: "Ada"},
		{name: "field_case_insensitive", target: ada, member: "name", want: "Ada"},
		{name: "json_tag", target: ada, member: "full_name", want: "Ada"},
		{name: "yaml_tag", target: ada, member: "nick", want: "countess"},
		{name: "ignored_tag_still_by_name", target: ada, member: "Email", want: "ada@example.com"},
		{name: "pointer", target: &ada, member: "Name", want: "Ada"},
		{name: "plain_getter", target: ada, member: "age", want: 36},
		{name: "get_prefix_pointer_receiver_on_value", target: ada, member: "title", want: "Dr. Ada"},
		{name: "is_prefix", target: ada, member: "adult", want: true},
		{name: "getter_error", target: ada, member: "failure", wantErr: errAny},
		{name: "method_with_args_ignored", target: ada, member: "greeting", wantErr: ErrNoSuchProperty},
		{name: "missing_member", target: person{}, member: "Unknown", wantErr: ErrNoSuchProperty},
		{name: "promoted_field", target: audited{person: ada, Revision: 2}, member: "Name", want: "Ada"},
		{name: "promoted_method", target: audited{person: ada}, member: "Age", want: 36},
		{name: "own_field", target: audited{Revision: 2}, member: "revision", want: 2},
		{name: "empty_name", target: ada, member: "", wantErr: ErrNoSuchProperty},
		{name: "map_has_no_properties", target: map[string]any{"Name": "x"}, member: "Name", wantErr: ErrNoSuchProperty},
		{name: "slice_has_no_properties", target: []int{1}, member: "0", wantErr: ErrNoSuchProperty},
		{name: "scalar", target: "Ada", member: "Name", wantErr: ErrNotAccessible},
		{name: "nil", target: nil, member: "Name", wantErr: ErrNotAccessible},
		{name: "nil_pointer", target: (*person)(nil), member: "Name", wantErr: ErrNotAccessible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Get(tt.target, tt.member)
			checkResult(t, "Get", tt.member, got, err, tt.want, tt.wantErr)
		})
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	reg := &registry{Name: "main", items: map[string]any{"secret": 42}}

	tests := []struct {
		name    string
		target  any
		key     string
		want    any
		wantErr error
	}{
		{name: "string_map", target: map[string]any{"a": 1}, key: "a", want: 1},
		{name: "named_map", target: bag{"a": "b"}, key: "a", want: "b"},
		{name: "int_map", target: map[int]string{7: "seven"}, key: "7", want: "seven"},
		{name: "any_key_map", target: map[any]any{"k": "v"}, key: "k", want: "v"},
		{name: "missing_key", target: map[string]any{}, key: "a", wantErr: ErrNoSuchIndex},
		{name: "bad_int_key", target: map[int]string{}, key: "x", wantErr: ErrNoSuchIndex},
		{name: "nil_map", target: map[string]any(nil), key: "a", wantErr: ErrNoSuchIndex},
		{name: "slice", target: []string{"a", "b"}, key: "1", want: "b"},
		{name: "negative_index", target: []string{"a", "b"}, key: "-1", want: "b"},
		{name: "array", target: [2]int{5, 6}, key: "0", want: 5},
		{name: "out_of_range", target: []int{1}, key: "3", wantErr: ErrNoSuchIndex},
		{name: "negative_out_of_range", target: []int{1}, key: "-2", wantErr: ErrNoSuchIndex},
		{name: "non_numeric_index", target: []int{1}, key: "first", wantErr: ErrNoSuchIndex},
		{name: "keyed", target: reg, key: "secret", want: 42},
		{name: "keyed_miss", target: reg, key: "nope", wantErr: ErrNoSuchIndex},
		{name: "struct", target: person{}, key: "Name", wantErr: ErrNotIndexable},
		{name: "scalar", target: 3, key: "0", wantErr: ErrNotAccessible},
		{name: "nil_keyed", target: (*registry)(nil), key: "secret", wantErr: ErrNotAccessible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Index(tt.target, tt.key)
			checkResult(t, "Index", tt.key, got, err, tt.want, tt.wantErr)
		})
	}
}

func TestKeyedStructKeepsFields(t *testing.T) {
	t.Parallel()

	reg := &registry{Name: "main", items: map[string]any{"secret": 42}}

	name, err := Get(reg, "Name")
	if err != nil || name != "main" {
		t.Fatalf("Get(registry, Name) = (%v, %v), want (main, nil)", name, err)
	}

	if _, err := Get(reg, "secret"); !errors.Is(err, ErrNoSuchProperty) {
		t.Fatalf("Get(registry, secret) error = %v, want ErrNoSuchProperty", err)
	}
}

func TestAccessible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target any
		want   bool
	}{
		{target: person{}, want: true},
		{target: &person{}, want: true},
		{target: map[string]int{}, want: true},
		{target: []any{}, want: true},
		{target: "text", want: false},
		{target: 1.5, want: false},
		{target: nil, want: false},
		{target: (*person)(nil), want: false},
	}

	for _, tt := range tests {
		if got := Accessible(tt.target); got != tt.want {
			t.Errorf("Accessible(%#v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

// errAny marks cases expecting an error without a specific sentinel.
var errAny = errors.New("any error")

func checkResult(t *testing.T, fn, key string, got any, err error, want any, wantErr error) {
	t.Helper()

	if wantErr != nil {
		if err == nil {
			t.Fatalf("%s(%q) = %v, want error", fn, key, got)
		}
		if wantErr != errAny && !errors.Is(err, wantErr) {
			t.Fatalf("%s(%q) error = %v, want %v", fn, key, err, wantErr)
		}
		return
	}

	if err != nil {
		t.Fatalf("%s(%q) error = %v", fn, key, err)
	}
	if got != want {
		t.Fatalf("%s(%q) = %v, want %v", fn, key, got, want)
	}
}
