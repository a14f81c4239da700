// Package cli renders valuations, dividend histories, the sensitivity heat
// map and the tutorial as terminal text, and hosts the interactive REPL.
package cli
