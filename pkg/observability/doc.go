/*
Package observability provides evaluation metrics for the Web Algebra engine.

The Metrics interface decouples the interpreter from any concrete backend;
the Prometheus implementation is used by the HTTP server, and the no-op
implementation keeps library and CLI use free of collectors.
*/
package observability
