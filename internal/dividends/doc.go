// Package dividends holds dated dividend payment series and the descriptive
// statistics derived from them: the historical compound annual growth rate
// and per-year totals.
package dividends
