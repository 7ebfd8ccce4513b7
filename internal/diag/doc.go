// Package diag defines the diagnostic model shared by the validation layer,
// the driver and the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings about IRC
//     lines: framing problems, structural oddities, protocol limit overruns.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does no formatting beyond the single-line golden form, no IO
// and no CLI integration. Rendering lives in internal/diagfmt; collection per
// file lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (SYN2001).
//   - Message – human oriented text; keep it short.
//   - Primary – source.Location of the offending bytes.
//   - Notes – optional secondary locations with extra context.
//
// Code families: LIN line framing, SYN message structure, LIM protocol
// limits, IO file access, OBS observability.
//
// # Emitting diagnostics
//
// Producers take a diag.Reporter. ReportError/ReportWarning/ReportInfo return
// a ReportBuilder that can carry notes before Emit. BagReporter collects into
// a Bag, which supports limits, sorting and deduplication.
package diag
