package cli

import (
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/atomgraph/webalgebra"
	"github.com/atomgraph/webalgebra/internal/adapters/linkeddata"
	"github.com/atomgraph/webalgebra/internal/adapters/openai"
	"github.com/atomgraph/webalgebra/internal/adapters/sparqlhttp"
	"github.com/atomgraph/webalgebra/pkg/observability"
)

// BuildEngine initializes an Engine with standard CLI conventions: the
// logger everywhere, TLS and translator configuration from settings, and
// an optional metrics backend.
func BuildEngine(settings Settings, logger *slog.Logger, metrics observability.Metrics) (*webalgebra.Engine, error) {
	ldOpts := []linkeddata.Option{linkeddata.WithLogger(logger)}
	if settings.CertPemPath != "" || settings.InsecureSkipVerify {
		cfg := &tls.Config{InsecureSkipVerify: settings.InsecureSkipVerify}
		if settings.CertPemPath != "" {
			keyPath := settings.CertKeyPath
			if keyPath == "" {
				// A single PEM carrying both certificate and key.
				keyPath = settings.CertPemPath
			}
			cert, err := tls.LoadX509KeyPair(settings.CertPemPath, keyPath)
			if err != nil {
				return nil, fmt.Errorf("load client certificate: %w", err)
			}
			cfg.Certificates = []tls.Certificate{cert}
		}
		ldOpts = append(ldOpts, linkeddata.WithTLSConfig(cfg))
	}

	engineOpts := []webalgebra.Option{
		webalgebra.WithLogger(logger),
		webalgebra.WithLinkedDataClient(linkeddata.New(ldOpts...)),
		webalgebra.WithSPARQLClient(sparqlhttp.New(sparqlhttp.WithLogger(logger))),
	}
	if metrics != nil {
		engineOpts = append(engineOpts, webalgebra.WithMetrics(metrics))
	}

	if settings.OpenAI.APIKey != "" {
		aiOpts := []openai.Option{openai.WithLogger(logger)}
		if settings.OpenAI.Model != "" {
			aiOpts = append(aiOpts, openai.WithModel(settings.OpenAI.Model))
		}
		if settings.OpenAI.BaseURL != "" {
			aiOpts = append(aiOpts, openai.WithBaseURL(settings.OpenAI.BaseURL))
		}
		engineOpts = append(engineOpts, webalgebra.WithTranslator(openai.New(settings.OpenAI.APIKey, aiOpts...)))
	}

	return webalgebra.New(engineOpts...), nil
}
