// Command anyconf loads, merges and converts configuration files.
//
// Usage:
//
//	anyconf [flags] INPUT...
//	anyconf list [--by type|extension|id]
//
// Inputs are merged left to right with the strategy given by --merge. The
// result is written to --output, or to stdout, in the type given by --otype,
// falling back to the type of the first input.
package main
