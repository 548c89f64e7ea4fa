// Package taint decodes the kernel taint bitmask against the table of
// known taint flags.
//
// The table mirrors the flag assignments documented in the kernel's
// admin-guide (bits 0-17). Higher bits have no table entry and are
// ignored by every operation in this package.
package taint

import "fmt"

// Severity classifies how concerning a set taint flag is. It affects
// presentation only.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityAlert
)

// String returns the lowercase name used in machine-readable output.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityAlert:
		return "alert"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Spacer is printed in the compact symbol line for unset flags that
// have no mnemonic letter for their clear state.
const Spacer = '.'

// FlagDefinition describes a single kernel taint bit.
type FlagDefinition struct {
	// Bit is the flag's position in the taint word, in [0,63].
	Bit uint

	Severity Severity

	// OnChar is the mnemonic letter shown when the flag is set.
	OnChar rune

	// OffChar is the mnemonic letter for the clear state, or 0 when
	// the clear state has no letter of its own.
	OffChar rune

	// OffDescription describes the clear state. It may be empty even
	// when OffChar is present.
	OffDescription string

	// OnDescription describes the set state. Never empty.
	OnDescription string
}

// Value returns the numeric value of the flag's bit.
func (d FlagDefinition) Value() uint64 {
	return uint64(1) << d.Bit
}

// HasOffChar reports whether the clear state has a mnemonic letter.
func (d FlagDefinition) HasOffChar() bool {
	return d.OffChar != 0
}

// Table is the ordered list of known taint flags. Order is display
// order. Bit positions are unique.
var Table = []FlagDefinition{
	{
		Bit: 0, Severity: SeverityInfo, OffChar: 'G', OnChar: 'P',
		OffDescription: "Only GPL modules were loaded",
		OnDescription:  "Proprietary modules were loaded",
	},
	{
		Bit: 1, Severity: SeverityWarn, OnChar: 'F',
		OnDescription: "Module was force loaded (e.g., insmod -f)",
	},
	{
		Bit: 2, Severity: SeverityWarn, OnChar: 'S',
		OnDescription: "SMP kernel oops on an officially SMP incapable processor",
	},
	{
		Bit: 3, Severity: SeverityAlert, OnChar: 'R',
		OnDescription: "Module was force unloaded (e.g., rmmod -f)",
	},
	{
		Bit: 4, Severity: SeverityAlert, OnChar: 'M',
		OnDescription: "Processor reported a Machine Check Exception (hardware error)",
	},
	{
		Bit: 5, Severity: SeverityAlert, OnChar: 'B',
		OnDescription: "Bad memory page referenced, or unexpected page flags encountered (possible hardware error)",
	},
	{
		Bit: 6, Severity: SeverityWarn, OnChar: 'U',
		OnDescription: "Taint requested by a userspace application",
	},
	{
		Bit: 7, Severity: SeverityAlert, OnChar: 'D',
		OnDescription: "Kernel OOPS or BUG triggered taint",
	},
	{
		Bit: 8, Severity: SeverityWarn, OnChar: 'A',
		OnDescription: "ACPI Differentiated System Description Table overriden by user",
	},
	{
		Bit: 9, Severity: SeverityWarn, OnChar: 'W',
		OnDescription: "Kernel warning triggered taint",
	},
	{
		Bit: 10, Severity: SeverityWarn, OnChar: 'C',
		OnDescription: "Module from drivers/staging was loaded",
	},
	{
		Bit: 11, Severity: SeverityWarn, OnChar: 'I',
		OnDescription: "Workaround for a bug in platform firmware was applied",
	},
	{
		Bit: 12, Severity: SeverityInfo, OnChar: 'O',
		OnDescription: "Externally-built (out-of-tree) module was loaded",
	},
	{
		Bit: 13, Severity: SeverityInfo, OnChar: 'E',
		OnDescription: "Unsigned module was loaded",
	},
	{
		Bit: 14, Severity: SeverityAlert, OnChar: 'L',
		OnDescription: "Soft lockup occurred",
	},
	{
		Bit: 15, Severity: SeverityWarn, OnChar: 'K',
		OnDescription: "Kernel was live-patched",
	},
	{
		Bit: 16, Severity: SeverityWarn, OnChar: 'X',
		OnDescription: "Auxiliary taint (depending on Linux distribution)",
	},
	{
		Bit: 17, Severity: SeverityInfo, OnChar: 'T',
		OnDescription: "Kernel was built with the struct randomization plugin",
	},
}

// Hex renders a taint word as 16 zero-padded uppercase hex digits,
// without a prefix.
func Hex(mask uint64) string {
	return fmt.Sprintf("%016X", mask)
}

// Symbol is one cell of the compact one-line flag display.
type Symbol struct {
	Char rune

	// Severity is the emphasis to display the cell with. Set flags
	// carry their definition's severity; unset flags that still have
	// a letter are always shown at info emphasis.
	Severity Severity

	Set bool

	// Lettered is false when Char is the bare spacer, which is
	// printed without any emphasis.
	Lettered bool
}

// Detail is one line of the per-flag report.
type Detail struct {
	Char        rune
	Description string
	Value       uint64
	Severity    Severity
	Unset       bool
}

// Report is the decoded form of a taint word.
type Report struct {
	Mask       uint64
	Symbols    []Symbol
	Details    []Detail
	NotTainted bool
}

// Hex returns the report's mask as a fixed-width hex string.
func (r Report) Hex() string {
	return Hex(r.Mask)
}

// Decode analyzes a taint word against the flag table.
//
// The symbol list has one entry per table definition in table order.
// The detail list has one entry per set flag, plus one entry per
// unset flag that has both an off letter and an off description.
// NotTainted is true exactly when the mask is zero.
func Decode(mask uint64) Report {
	rpt := Report{
		Mask:       mask,
		Symbols:    make([]Symbol, 0, len(Table)),
		Details:    make([]Detail, 0, len(Table)),
		NotTainted: mask == 0,
	}
	for _, def := range Table {
		set := mask&def.Value() == def.Value()
		switch {
		case set:
			rpt.Symbols = append(rpt.Symbols, Symbol{
				Char:     def.OnChar,
				Severity: def.Severity,
				Set:      true,
				Lettered: true,
			})
			rpt.Details = append(rpt.Details, Detail{
				Char:        def.OnChar,
				Description: def.OnDescription,
				Value:       def.Value(),
				Severity:    def.Severity,
			})
		case def.HasOffChar():
			rpt.Symbols = append(rpt.Symbols, Symbol{
				Char:     def.OffChar,
				Severity: SeverityInfo,
				Lettered: true,
			})
			if def.OffDescription != "" {
				rpt.Details = append(rpt.Details, Detail{
					Char:        def.OffChar,
					Description: def.OffDescription,
					Value:       def.Value(),
					Severity:    SeverityInfo,
					Unset:       true,
				})
			}
		default:
			rpt.Symbols = append(rpt.Symbols, Symbol{Char: Spacer, Severity: SeverityInfo})
		}
	}
	return rpt
}

// ListEntry is one line of the full flag listing.
type ListEntry struct {
	Char        rune
	Description string
	Value       uint64
	Unset       bool
}

// List enumerates every known flag in table order. Each definition
// contributes an entry for its set state, preceded by an entry for its
// clear state when that state has both a letter and a description.
func List() []ListEntry {
	entries := make([]ListEntry, 0, len(Table)+1)
	for _, def := range Table {
		if def.HasOffChar() && def.OffDescription != "" {
			entries = append(entries, ListEntry{
				Char:        def.OffChar,
				Description: def.OffDescription,
				Value:       def.Value(),
				Unset:       true,
			})
		}
		entries = append(entries, ListEntry{
			Char:        def.OnChar,
			Description: def.OnDescription,
			Value:       def.Value(),
		})
	}
	return entries
}
