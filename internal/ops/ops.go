// Package ops implements the built-in operations: value access and scoping
// combinators, string and URI utilities, SPARQL verbs, Linked Data HTTP
// verbs, table helpers and the LinkedDataHub document tools.
package ops

import (
	"log/slog"

	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/pkg/ports"
	"github.com/atomgraph/webalgebra/pkg/registry"
)

// Deps carries the external collaborators the effectful operations use.
// Core, string, URI and table operations need none of them.
type Deps struct {
	LinkedData ports.LinkedDataClient
	SPARQL     ports.SPARQLClient
	Translator ports.Translator
	Log        *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logging.NewNop()
}

// RegisterAll populates a registry with every built-in operation and
// freezes it.
func RegisterAll(reg *registry.Registry, deps Deps) {
	RegisterCore(reg)
	RegisterStrings(reg)
	RegisterURIs(reg)
	RegisterTable(reg)
	RegisterHTTP(reg, deps)
	RegisterSPARQL(reg, deps)
	RegisterLDH(reg, deps)
	reg.Freeze()
}
