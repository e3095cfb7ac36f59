// Package shape defines the closed set of structural shapes that operation
// arguments are validated against at the invocation boundary.
//
// Shapes describe values, not syntax: a "graph" shape accepts either an
// already-materialized graph or a JSON-LD-shaped literal, but never coerces
// between unrelated shapes (a plain string is not a term mapping).
package shape
