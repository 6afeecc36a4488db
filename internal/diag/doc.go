// Package diag carries the diagnostic model every phase reports into.
//
// A Diagnostic pairs a Severity and a stable numeric Code with a short
// message and a Primary span. An empty span marks a program-level
// finding with no anchor line. Optional Notes point at related spans,
// such as the earlier declaration in a duplicate report.
//
// Producers emit through the Reporter interface so they stay decoupled
// from storage. BagReporter collects into a Bag, which caps growth,
// sorts deterministically, and supports filtering and transformation.
// Report and ReportError build diagnostics fluently when notes are
// attached; plain Reporter.Report calls suffice otherwise.
//
// Rendering lives in internal/diagfmt, orchestration in internal/driver.
package diag
