package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/taintinfo-labs/taintinfo/internal/taint"
)

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow, color.Bold)
	alertColor = color.New(color.FgRed, color.Bold)
	labelColor = color.New(color.Bold)
)

func severityColor(s taint.Severity) *color.Color {
	switch s {
	case taint.SeverityWarn:
		return warnColor
	case taint.SeverityAlert:
		return alertColor
	default:
		return infoColor
	}
}

// renderReport writes a decoded taint word in the selected format.
func (c *CLI) renderReport(rpt taint.Report) error {
	switch c.cfg.Format {
	case "json":
		return c.outputJSON(newReportDoc(rpt))
	case "yaml":
		return c.outputYAML(newReportDoc(rpt))
	}
	c.printReportText(rpt)
	return nil
}

func (c *CLI) printReportText(rpt taint.Report) {
	var symbols strings.Builder
	for _, sym := range rpt.Symbols {
		if sym.Lettered {
			symbols.WriteString(severityColor(sym.Severity).Sprintf("%c", sym.Char))
		} else {
			symbols.WriteRune(sym.Char)
		}
	}
	// The label is padded so both header values start in the same column.
	c.printf("%s%s\n", labelColor.Sprint("Taint flags:            "), symbols.String())
	c.printf("%s%d / 0x%s\n", labelColor.Sprint("Numeric representation: "), rpt.Mask, rpt.Hex())
	c.println()
	for _, det := range rpt.Details {
		suffix := ""
		if det.Unset {
			suffix = " unset"
		}
		c.printf("- %s %s (%d%s)\n",
			severityColor(det.Severity).Sprintf("%c", det.Char),
			det.Description, det.Value, suffix)
	}
	if rpt.NotTainted {
		c.println("(Kernel is not tainted)")
	}
	c.println()
}

// renderList writes the full flag listing in the selected format.
func (c *CLI) renderList(entries []taint.ListEntry) error {
	switch c.cfg.Format {
	case "json":
		return c.outputJSON(newListDoc(entries))
	case "yaml":
		return c.outputYAML(newListDoc(entries))
	}
	for _, entry := range entries {
		suffix := ""
		if entry.Unset {
			suffix = " unset"
		}
		c.printf("- %c: %s (%d%s)\n", entry.Char, entry.Description, entry.Value, suffix)
	}
	return nil
}

// printWarnings writes parse warnings to the diagnostic stream. They
// are never suppressed by --quiet.
func (c *CLI) printWarnings(warnings []taint.Warning) {
	for _, warning := range warnings {
		for _, line := range warning.Lines() {
			warnColor.Fprintln(c.errOut, line)
		}
	}
}

func (c *CLI) outputJSON(doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json output: %w", err)
	}
	c.println(string(data))
	return nil
}

func (c *CLI) outputYAML(doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding yaml output: %w", err)
	}
	c.printf("%s", data)
	return nil
}

// reportDoc is the machine-readable shape of a decoded taint word.
type reportDoc struct {
	Mask    uint64          `json:"mask" yaml:"mask"`
	Hex     string          `json:"hex" yaml:"hex"`
	Symbols string          `json:"symbols" yaml:"symbols"`
	Tainted bool            `json:"tainted" yaml:"tainted"`
	Flags   []reportFlagDoc `json:"flags" yaml:"flags"`
}

type reportFlagDoc struct {
	Flag        string `json:"flag" yaml:"flag"`
	Description string `json:"description" yaml:"description"`
	Value       uint64 `json:"value" yaml:"value"`
	Severity    string `json:"severity" yaml:"severity"`
	Set         bool   `json:"set" yaml:"set"`
}

func newReportDoc(rpt taint.Report) reportDoc {
	var symbols strings.Builder
	for _, sym := range rpt.Symbols {
		symbols.WriteRune(sym.Char)
	}
	doc := reportDoc{
		Mask:    rpt.Mask,
		Hex:     rpt.Hex(),
		Symbols: symbols.String(),
		Tainted: !rpt.NotTainted,
		Flags:   make([]reportFlagDoc, 0, len(rpt.Details)),
	}
	for _, det := range rpt.Details {
		doc.Flags = append(doc.Flags, reportFlagDoc{
			Flag:        string(det.Char),
			Description: det.Description,
			Value:       det.Value,
			Severity:    det.Severity.String(),
			Set:         !det.Unset,
		})
	}
	return doc
}

type listEntryDoc struct {
	Flag        string `json:"flag" yaml:"flag"`
	Description string `json:"description" yaml:"description"`
	Value       uint64 `json:"value" yaml:"value"`
	Unset       bool   `json:"unset" yaml:"unset"`
}

func newListDoc(entries []taint.ListEntry) []listEntryDoc {
	docs := make([]listEntryDoc, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, listEntryDoc{
			Flag:        string(entry.Char),
			Description: entry.Description,
			Value:       entry.Value,
			Unset:       entry.Unset,
		})
	}
	return docs
}
