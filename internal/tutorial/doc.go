// Package tutorial implements the five-step dividend discount model
// walkthrough: a small value-type state machine, one State per session, and
// the static page content each step displays.
package tutorial
