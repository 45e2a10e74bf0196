// Package types defines the public data model for decoding master/plugin
// content files: reference ids and the load-order remapping table, record
// and group framing headers, the closed set of decoded record variants,
// typed format errors, diagnostics and decode limits.
//
// Design goals:
//   - Records are plain values owned by the caller; the engine keeps no
//     long-lived record state.
//   - Reference ids are stored exactly as read. Resolution against a
//     load order is an explicit step (Resolve, ResolveRecord).
//   - Typed errors with stable kinds so callers can branch with errors.Is.
//   - Paranoid bounds checking; never panic on malformed input.
package types
