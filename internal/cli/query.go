package cli

import "github.com/taintinfo-labs/taintinfo/internal/taint"

// runQuery decodes a user-supplied flag letter combination without
// touching the system. Unknown letters and on/off conflicts are
// reported as warnings and never fail the invocation.
func (c *CLI) runQuery(letters string) error {
	mask, warnings := taint.ParseFlags(letters)
	c.printWarnings(warnings)
	c.debugf("parsed %q into mask %d\n", letters, mask)
	return c.renderReport(taint.Decode(mask))
}
