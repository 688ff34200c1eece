package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommandRecord represents a single accepted history entry
type CommandRecord struct {
	FullCommand string
	BaseCommand string
	Arguments   string
}

// IngestStats holds statistics about one ingestion run
type IngestStats struct {
	TotalLines int
	Accepted   int
	Skipped    int
	Excluded   int
}

// HistoryParser handles parsing of shell history lines
type HistoryParser struct {
	timestampRegex   *regexp.Regexp
	zshExtendedRegex *regexp.Regexp
	excludePatterns  []string
}

// NewHistoryParser creates a new parser instance
func NewHistoryParser(excludePatterns []string) *HistoryParser {
	// Bash writes timestamp markers as their own lines: #<epoch seconds>
	timestampRegex := regexp.MustCompile(`^#[0-9]+$`)

	// Regex for zsh extended history format: : <timestamp>:<duration>;<command>
	zshRegex := regexp.MustCompile(`^:\s*(\d+):(\d+);(.*)$`)

	return &HistoryParser{
		timestampRegex:   timestampRegex,
		zshExtendedRegex: zshRegex,
		excludePatterns:  excludePatterns,
	}
}

// ParseLine parses a single history line into a CommandRecord.
// The second return value is false when the line is not a command:
// blank lines, timestamp markers, and lines starting with a space
// (the shell convention for "do not record").
func (p *HistoryParser) ParseLine(line string) (CommandRecord, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return CommandRecord{}, false
	}

	// Replace invalid byte sequences rather than failing; old history
	// files are not always clean UTF-8.
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}

	if p.timestampRegex.MatchString(line) {
		return CommandRecord{}, false
	}

	if strings.HasPrefix(line, " ") {
		return CommandRecord{}, false
	}

	// Normalize zsh extended history entries to the bare command
	if matches := p.zshExtendedRegex.FindStringSubmatch(line); len(matches) == 4 {
		line = matches[3]
	}

	full := strings.TrimSpace(line)
	if full == "" {
		return CommandRecord{}, false
	}

	// Base command is the first whitespace-delimited token; arguments are
	// the verbatim remainder with internal whitespace preserved.
	base := full
	args := ""
	if idx := strings.IndexFunc(full, unicode.IsSpace); idx >= 0 {
		base = full[:idx]
		args = strings.TrimLeftFunc(full[idx:], unicode.IsSpace)
	}

	return CommandRecord{
		FullCommand: full,
		BaseCommand: base,
		Arguments:   args,
	}, true
}

// shouldExclude checks a command against the configured exclusion patterns
func (p *HistoryParser) shouldExclude(command string) bool {
	lowerCommand := strings.ToLower(command)
	for _, pattern := range p.excludePatterns {
		if strings.Contains(lowerCommand, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// ParseHistoryFile reads a history file line by line and appends every
// accepted entry to the store
func (p *HistoryParser) ParseHistoryFile(filePath string, store *CommandStore) (IngestStats, error) {
	stats := IngestStats{}

	file, err := os.Open(filePath)
	if err != nil {
		return stats, fmt.Errorf("failed to open history file: %v", err)
	}
	defer file.Close()

	var records []CommandRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		stats.TotalLines++

		record, ok := p.ParseLine(scanner.Text())
		if !ok {
			stats.Skipped++
			continue
		}

		if p.shouldExclude(record.FullCommand) {
			stats.Excluded++
			continue
		}

		records = append(records, record)
		stats.Accepted++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("error reading history file: %v", err)
	}

	if err := store.AppendBatch(records); err != nil {
		return stats, fmt.Errorf("failed to store history entries: %v", err)
	}

	return stats, nil
}

// DetectHistoryFile returns the first readable history file in the user's
// home directory, checking common shells in order
func DetectHistoryFile(homeDir string) string {
	candidates := []string{
		".bash_history",
		".zsh_history",
		".history",
	}

	for _, candidate := range candidates {
		filePath := filepath.Join(homeDir, candidate)
		if _, err := os.Stat(filePath); err == nil {
			return filePath
		}
	}

	// Default to the bash location even if it does not exist yet; the
	// caller reports missing files and proceeds with stored data
	return filepath.Join(homeDir, ".bash_history")
}
