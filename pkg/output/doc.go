// Package output writes comparison reports and run summaries.
//
// A Renderer turns a ComparisonPlan into the report file. The report style
// is chosen once with NewRenderer; every style consumes the same plan, so
// classification is never repeated here. File content is re-read per path
// while rendering and a read failure is written inline as an error line.
//
// A Formatter prints the run summary (human or JSON) and ProgressBar draws
// reconciliation progress on a terminal.
package output
