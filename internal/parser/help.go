package parser

import (
	"io"
	"strings"
)

const (
	spacer      = "  "
	columnWidth = 30
)

// column pads left to the help column, keeping at least two spaces before right.
func column(left, right string) string {
	pad := columnWidth - len(left)
	if pad < 2 {
		pad = 2
	}
	return spacer + left + strings.Repeat(" ", pad) + right
}

// HelpLines renders the full help text: usage synopses, options, commands and
// a per-plugin listing.
func (p *Parser) HelpLines() []string {
	lines := []string{"usage:", spacer + p.program + " " + HelpKey}
	for _, u := range p.UsageLines() {
		lines = append(lines, strings.TrimRight(spacer+p.program+" "+u, " "))
	}
	lines = append(lines, "")

	var options, commands []string
	for _, f := range p.flags {
		line := column(f.Usage(), f.Help)
		if f.IsOption() {
			options = append(options, line)
		} else {
			commands = append(commands, line)
		}
	}

	lines = append(lines, "Options:")
	lines = append(lines, options...)
	lines = append(lines, "")

	lines = append(lines, "Commands:")
	lines = append(lines, commands...)
	lines = append(lines, column(HelpKey, "Show the help menu"), "")

	lines = append(lines, "Plugins:")

	for _, pl := range p.plugins {
		lines = append(lines, "", pl.Name(), spacer+pl.Description())
		var flagLines []string
		for _, g := range pl.FlagGroups() {
			for _, f := range g.Flags {
				flagLines = append(flagLines, column(f.Usage(), f.Help))
			}
		}
		if len(flagLines) > 0 {
			lines = append(lines, "")
			lines = append(lines, flagLines...)
		}
	}
	return lines
}

// WriteHelp writes the help text to w, one line at a time.
func (p *Parser) WriteHelp(w io.Writer) error {
	for _, line := range p.HelpLines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
