// Package segment splits property paths into segments and recognizes the
// segment forms the resolver interprets.
//
// A path is a dot separated list of segments:
//   - plain identifiers such as "person" or "0"
//   - the wildcard "*"
//   - bracket expressions such as `[Name == "Ada"]`, which may nest
//
// Dots inside a balanced [...] or {...} group never separate segments, so
// `items.[Tags[0] == "a.b"].name` and `{{ .field }}` placeholders survive
// tokenization intact.
package segment
