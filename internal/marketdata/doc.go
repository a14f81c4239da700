// Package marketdata retrieves dividend histories and company names for a
// ticker. YahooProvider talks to the Yahoo Finance chart API; Cache and
// CachedProvider keep successful results for a bounded time so repeated
// lookups within a session do not hit the network.
package marketdata
