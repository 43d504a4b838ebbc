// Package ingest contains the row-validation pipeline for bulk entity
// ingestion into InterLex.
//
// This package is the heart of the tool, independent of any file format
// or CLI surface. It can be driven by the CSV and XLSX sources in
// internal/tabular, or by tests with in-memory tables.
//
// # Flow
//
// A batch run gates on the header first: the input must carry exactly
// the required column set, or the whole batch is refused before any row
// is touched. Each row then passes through a fixed sequence of
// read-only registry checks:
//
//  1. synonym duplicates
//  2. curie existence
//  3. superclass existence
//  4. label duplicate
//
// The first failing check rejects the row and records its message;
// later checks never run. Rows that pass every check are submitted and
// the registry-assigned identifier is recorded. Either way the row
// appears exactly once in the output, annotated with error, success
// (T/F), and the assigned fragment.
//
// # Shared state
//
// The only state shared across rows is the PrefixTable, built once per
// run from the registry's curie catalog and read-only afterwards. It is
// passed explicitly into the checks that need it.
package ingest
