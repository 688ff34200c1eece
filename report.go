package main

import (
	"fmt"
	"io"
)

// ReportWriter formats analysis results as the three-section text report
type ReportWriter struct {
	out    io.Writer
	config AnalysisConfig
}

// NewReportWriter creates a report writer targeting the given output
func NewReportWriter(out io.Writer, config AnalysisConfig) *ReportWriter {
	return &ReportWriter{
		out:    out,
		config: config,
	}
}

// WriteReport writes the full analysis report
func (rw *ReportWriter) WriteReport(top []FrequencyEntry, typos []TypoSuggestion, aliases []AliasSuggestion) {
	fmt.Fprintf(rw.out, "\n--- Shell History Analysis ---\n\n")
	rw.WriteTopCommands(top)
	rw.WriteTypos(typos)
	rw.WriteAliases(aliases)
}

// WriteTopCommands writes the numbered frequency section
func (rw *ReportWriter) WriteTopCommands(entries []FrequencyEntry) {
	fmt.Fprintf(rw.out, "1. Top %d Most Frequent Commands:\n", rw.config.TopCommandCount)
	for i, entry := range entries {
		fmt.Fprintf(rw.out, "%2d. %s (%d)\n", i+1, entry.Command, entry.Count)
	}
	fmt.Fprintln(rw.out)
}

// WriteTypos writes the typo section
func (rw *ReportWriter) WriteTypos(typos []TypoSuggestion) {
	fmt.Fprintf(rw.out, "2. Potential Typos (freq < %d, similar to high-freq commands):\n", rw.config.HighFrequencyThreshold)
	if len(typos) == 0 {
		fmt.Fprintln(rw.out, "No typos detected.")
	} else {
		for _, typo := range typos {
			fmt.Fprintf(rw.out, "  '%s' (freq: %d) -> Did you mean '%s'?\n", typo.Typo, typo.Frequency, typo.Suggestion)
		}
	}
	fmt.Fprintln(rw.out)
}

// WriteAliases writes the alias suggestion section
func (rw *ReportWriter) WriteAliases(aliases []AliasSuggestion) {
	fmt.Fprintf(rw.out, "3. Alias Suggestions (freq > %d, len > %d):\n", rw.config.AliasMinUses, rw.config.AliasMinLength)
	if len(aliases) == 0 {
		fmt.Fprintln(rw.out, "No alias suggestions found.")
	} else {
		for _, alias := range aliases {
			fmt.Fprintf(rw.out, "  Consider aliasing: '%s' (used %d times)\n", alias.Command, alias.Frequency)
		}
	}
	fmt.Fprintln(rw.out)
}
