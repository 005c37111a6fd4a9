// Package cmd wires the cobra-based CLI commands for spoctl.
//
// Each command lives in its own file with an options struct, a pure
// validate step, and a run closure that threads the per-invocation state
// (profile, verbosity) explicitly instead of through shared globals.
package cmd
