// Package output renders command results as JSON, YAML or a styled
// key/value listing.
//
// [Writer] is the [cmdlet.Sink] used by every command. Each successful
// envelope becomes one document on stdout; continuation notes go to
// stderr so stdout stays machine-readable.
package output
