// Package message provides immutable HTTP request and response values for the wphttp pipeline.
//
// Values are never modified in place: every With* method returns a copy. Header names are
// case-insensitive and stored in canonical form. A [Body] knows whether its size is known and may
// expose metadata about where it was read from, which middleware uses to infer a Content-Type.
package message
