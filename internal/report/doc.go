// Package report renders scan results and removal outcomes.
//
// Three writers are provided:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for scripts
//   - MarkdownWriter: Markdown tables for sharing or archiving
//
// All of them implement Writer, so the CLI picks one from the report
// flags and never has to know which format it is writing.
package report
