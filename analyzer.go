package main

import (
	"fmt"
	"unicode/utf8"
)

// FrequencySource provides aggregated command frequencies for analysis.
// Both tables are ordered descending by count, ties broken by first
// insertion, which the analyzer relies on for deterministic results.
type FrequencySource interface {
	FrequenciesByFullCommand() ([]FrequencyEntry, error)
	FrequenciesByBaseCommand() ([]FrequencyEntry, error)
}

// TypoSuggestion pairs a low-frequency command with the high-frequency
// command it is probably a misspelling of
type TypoSuggestion struct {
	Typo       string
	Suggestion string
	Frequency  int
}

// AliasSuggestion flags a long, frequently-used command as an alias candidate
type AliasSuggestion struct {
	Command   string
	Frequency int
}

// AnalysisConfig holds the thresholds for the analysis heuristics
type AnalysisConfig struct {
	TopCommandCount        int `json:"top_command_count"`        // Entries to show in the frequency report
	HighFrequencyThreshold int `json:"high_frequency_threshold"` // Count at or above which a command is established
	MinTypoLength          int `json:"min_typo_length"`          // Shortest command considered a typo candidate
	AliasMinLength         int `json:"alias_min_length"`         // Command length above which an alias is suggested
	AliasMinUses           int `json:"alias_min_uses"`           // Usage count above which an alias is suggested
}

// DefaultAnalysisConfig returns the default analysis thresholds
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		TopCommandCount:        50,
		HighFrequencyThreshold: 3,
		MinTypoLength:          2,
		AliasMinLength:         15,
		AliasMinUses:           10,
	}
}

// Analyzer produces the frequency, typo and alias reports from aggregated
// command history
type Analyzer struct {
	source        FrequencySource
	config        AnalysisConfig
	knownCommands map[string]bool
}

// NewAnalyzer creates an analyzer over the given frequency source
func NewAnalyzer(source FrequencySource, config AnalysisConfig) *Analyzer {
	return &Analyzer{
		source:        source,
		config:        config,
		knownCommands: make(map[string]bool),
	}
}

// SetKnownCommands marks commands that must never be reported as typos,
// regardless of how rarely they appear
func (a *Analyzer) SetKnownCommands(commands []string) {
	a.knownCommands = make(map[string]bool, len(commands))
	for _, command := range commands {
		a.knownCommands[command] = true
	}
}

// TopCommands returns the most frequent full commands, at most
// TopCommandCount entries. Shorter tables are returned whole.
func (a *Analyzer) TopCommands() ([]FrequencyEntry, error) {
	frequencies, err := a.source.FrequenciesByFullCommand()
	if err != nil {
		return nil, fmt.Errorf("failed to load command frequencies: %v", err)
	}

	if len(frequencies) > a.config.TopCommandCount {
		frequencies = frequencies[:a.config.TopCommandCount]
	}
	return frequencies, nil
}

// DetectTypos finds base commands used fewer than HighFrequencyThreshold
// times that are exactly one edit away from an established command.
//
// The scan is first-match, not best-match: for each low-frequency
// candidate the established commands are tried in frequency-table order
// and the first hit wins. An empty result is normal, not an error.
func (a *Analyzer) DetectTypos() ([]TypoSuggestion, error) {
	frequencies, err := a.source.FrequenciesByBaseCommand()
	if err != nil {
		return nil, fmt.Errorf("failed to load base command frequencies: %v", err)
	}

	// Partition by count; the split is disjoint since each distinct
	// command has exactly one count
	var highFreq, lowFreq []FrequencyEntry
	for _, entry := range frequencies {
		if entry.Count >= a.config.HighFrequencyThreshold {
			highFreq = append(highFreq, entry)
		} else {
			lowFreq = append(lowFreq, entry)
		}
	}

	var typos []TypoSuggestion
	for _, low := range lowFreq {
		// Skip very short commands to avoid false positives (e.g. 'l' vs 'ls')
		if utf8.RuneCountInString(low.Command) < a.config.MinTypoLength {
			continue
		}

		if a.knownCommands[low.Command] {
			continue
		}

		for _, high := range highFreq {
			if editDistanceIsOne(low.Command, high.Command) {
				typos = append(typos, TypoSuggestion{
					Typo:       low.Command,
					Suggestion: high.Command,
					Frequency:  low.Count,
				})
				break
			}
		}
	}

	return typos, nil
}

// SuggestAliases returns full commands that are both long and frequently
// used, in frequency-table order
func (a *Analyzer) SuggestAliases() ([]AliasSuggestion, error) {
	frequencies, err := a.source.FrequenciesByFullCommand()
	if err != nil {
		return nil, fmt.Errorf("failed to load command frequencies: %v", err)
	}

	var suggestions []AliasSuggestion
	for _, entry := range frequencies {
		if utf8.RuneCountInString(entry.Command) > a.config.AliasMinLength && entry.Count > a.config.AliasMinUses {
			suggestions = append(suggestions, AliasSuggestion{
				Command:   entry.Command,
				Frequency: entry.Count,
			})
		}
	}

	return suggestions, nil
}

// editDistanceIsOne reports whether two strings are exactly one primitive
// edit apart: a single substitution or adjacent transposition when the
// lengths match, or a single insertion/deletion when they differ by one.
// Transpositions count as one edit so that swapped letters ('gti' for
// 'git') are caught, the most common real-world typo. Equal strings are
// never one edit apart. Runs in linear time.
func editDistanceIsOne(s1, s2 string) bool {
	r1 := []rune(s1)
	r2 := []rune(s2)

	lengthDiff := len(r1) - len(r2)
	if lengthDiff < -1 || lengthDiff > 1 {
		return false
	}

	if s1 == s2 {
		return false
	}

	if lengthDiff == 0 {
		// Same length: one substituted position, or two adjacent
		// positions holding each other's rune
		diffs := make([]int, 0, 3)
		for i := range r1 {
			if r1[i] != r2[i] {
				diffs = append(diffs, i)
				if len(diffs) > 2 {
					return false
				}
			}
		}
		if len(diffs) == 1 {
			return true
		}
		if len(diffs) == 2 {
			i, j := diffs[0], diffs[1]
			return j == i+1 && r1[i] == r2[j] && r1[j] == r2[i]
		}
		return false
	}

	// Lengths differ by one: ensure r1 is the shorter string, then skip
	// the single extra rune in the longer one at the first divergence
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}

	i := 0
	for i < len(r1) && r1[i] == r2[i] {
		i++
	}

	for j := i; j < len(r1); j++ {
		if r1[j] != r2[j+1] {
			return false
		}
	}
	return true
}
