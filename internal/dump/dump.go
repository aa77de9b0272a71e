// Package dump renders an assembled Bonbon for --verbose CLI inspection.
package dump

import "github.com/davecgh/go-spew/spew"

// Sdump formats v (typically an *assemble.Bonbon) as a human-readable dump.
func Sdump(v interface{}) string {
	return spew.Sdump(v)
}
