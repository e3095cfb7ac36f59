package webalgebra

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/atomgraph/webalgebra.Version=...".
var Version = "0.1.0"
