// Package schema holds the subrecord layer and the per-record-type loaders.
//
// A record body is a sequence of (tag, length, payload) subrecords. A
// SubrecordIterator walks one body and never reads past its end; a Loader
// consumes an iterator and returns one decoded record; an Encoder does the
// reverse through a SubrecordWriter. Loaders and encoders are registered by
// tag in an immutable Registry owned by the reader that uses it:
//
//	reg := schema.Default()                       // built-in record types
//	reg = reg.With(schema.Entry{Tag: myTag, ...}) // copy with one more type
//
// Loaders are pure: they see only the iterator for the current record,
// store reference ids exactly as read, and never trigger another read.
// Unknown subrecord tags are skipped by length, which is what lets one
// loader tolerate schema drift across format versions.
package schema
