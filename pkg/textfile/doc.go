// =============================================================================
// recordkit - Text File Engine
// =============================================================================
//
// Package textfile reads and writes line-oriented delimited text and exposes
// each line as a positional Record with typed, validated field getters.
//
// FEATURES:
//   - Explicit text encoding (IANA names via golang.org/x/text), UTF-8 with
//     byte-order-mark detection by default
//   - Line-stream batching with 1-based From/To line bounds
//   - Lazy line generator and a Next/Line/Err line reader
//   - Records with 1-based field positions and per-record error lists
//   - Helpers to read mapped items and to write items back out
//
// RECORD LIFECYCLE:
//   A Record is built once per line. Getters never fail: on an invalid
//   position, a failed string rule or a parse error they append a message to
//   the record and return nil. Once a record holds an error it stays invalid.
//
// =============================================================================
package textfile
