// Package input loads the documents the CLI resolves paths against.
package input
