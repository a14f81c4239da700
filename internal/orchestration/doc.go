// Package orchestration runs one or more valuation models concurrently and
// aggregates their outcomes for comparison. It decouples business logic from
// presentation via the ResultPresenter and ErrorHandler interfaces.
package orchestration
