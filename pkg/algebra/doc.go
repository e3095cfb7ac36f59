// Package algebra defines the Web Algebra data model: the operation node
// variants over the JSON value space, the @op wire format, operation
// descriptors with per-argument evaluation policy, the lexical variable
// environment, and the evaluation error taxonomy.
package algebra
