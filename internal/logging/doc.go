// Package logging provides a unified logging interface for the valuation
// suite. The market-data client, the orchestration layer, the REPL and the
// dashboard log through Logger, backed by zerolog: JSON for log files and
// console output for interactive runs.
package logging
