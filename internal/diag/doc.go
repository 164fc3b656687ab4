// Package diag defines the diagnostic model shared by the translator, the
// hosts and the CLI.
//
// A Diagnostic carries a Severity, a stable Code (CG1xxx for code
// generation, HOST2xxx for materialization and execution, IO3xxx for input
// handling), a short message and the optional source position the parser
// attached to the offending node.
//
// Producers emit through a Reporter so they stay independent of storage;
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. Rendering for terminals lives in the CLI; this package only
// offers the golden single-line form used by tests and short output.
package diag
