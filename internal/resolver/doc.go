// Package resolver reads values out of nested Go structures with dotted
// property paths.
//
// A path is split into segments (see package segment) and consumed front to
// back. Plain segments read a named property or, failing that, an indexed
// element. A "*" segment broadcasts the rest of the path over every element
// of the current target. A bracket segment such as `[Status == "open"]` keeps
// the elements matching the expression and broadcasts the rest of the path
// over the matches.
//
//	r := resolver.New(resolver.WithTokens(map[string]any{"id": "42"}))
//	r.Resolve(doc, "orders.*.lines.[Qty > 1].sku", nil)
//	r.Resolve(doc, "users.{{ .id }}.email", "unknown")
//
// Resolution never fails: wherever the path cannot be followed the default
// value is returned in place of the missing value.
package resolver
