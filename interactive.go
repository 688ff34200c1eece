package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// InteractiveSession is a small shell for exploring stored history
type InteractiveSession struct {
	configManager *ConfigManager
	store         *CommandStore
	analyzer      *Analyzer
	parser        *HistoryParser
}

// NewInteractiveSession creates an interactive session over the given
// store and analyzer
func NewInteractiveSession(cm *ConfigManager, store *CommandStore, analyzer *Analyzer, parser *HistoryParser) *InteractiveSession {
	return &InteractiveSession{
		configManager: cm,
		store:         store,
		analyzer:      analyzer,
		parser:        parser,
	}
}

// Run starts the interactive loop and blocks until the user exits
func (s *InteractiveSession) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "hindsight> ",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryLimit:      500,
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("hindsight interactive mode. Type 'help' for commands.")

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C at prompt just clears the line
				continue
			} else if err == io.EOF {
				break
			}
			fmt.Println("Error reading input:", err)
			continue
		}

		command := strings.TrimSpace(input)
		if command == "" {
			continue
		}
		if command == "exit" || command == "quit" {
			break
		}

		s.handleCommand(command)
	}

	return nil
}

// handleCommand dispatches a single interactive command
func (s *InteractiveSession) handleCommand(command string) {
	parts := strings.Fields(command)

	switch parts[0] {
	case "scan":
		path := s.configManager.HistoryPath()
		if len(parts) > 1 {
			path = parts[1]
		}
		s.runScan(path)
	case "top":
		limit := 0
		if len(parts) > 1 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
				limit = n
			}
		}
		s.showTopCommands(limit)
	case "typos":
		s.showTypos()
	case "aliases":
		s.showAliases()
	case "stats":
		s.showStats()
	case "report":
		s.showReport()
	case "reset":
		if err := s.store.Reset(); err != nil {
			fmt.Println("Error resetting store:", err)
		} else {
			fmt.Println("Command store cleared.")
		}
	case "help":
		s.showHelp()
	default:
		fmt.Printf("Unknown command: %s (type 'help' for commands)\n", parts[0])
	}
}

// runScan ingests a history file into the store
func (s *InteractiveSession) runScan(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Error: file %s not found.\n", path)
		return
	}

	fmt.Printf("Reading from %s...\n", path)
	stats, err := s.parser.ParseHistoryFile(path, s.store)
	if err != nil {
		fmt.Println("Error reading file:", err)
		return
	}

	fmt.Printf("Stored %d commands (%d lines read, %d skipped, %d excluded).\n",
		stats.Accepted, stats.TotalLines, stats.Skipped, stats.Excluded)
}

// showTopCommands prints the most frequent commands
func (s *InteractiveSession) showTopCommands(limit int) {
	entries, err := s.analyzer.TopCommands()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for i, entry := range entries {
		fmt.Printf("%2d. %s (%d)\n", i+1, entry.Command, entry.Count)
	}
}

// showTypos prints detected typos
func (s *InteractiveSession) showTypos() {
	typos, err := s.analyzer.DetectTypos()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(typos) == 0 {
		fmt.Println("No typos detected.")
		return
	}

	for _, typo := range typos {
		fmt.Printf("  '%s' (freq: %d) -> Did you mean '%s'?\n", typo.Typo, typo.Frequency, typo.Suggestion)
	}
}

// showAliases prints alias suggestions
func (s *InteractiveSession) showAliases() {
	aliases, err := s.analyzer.SuggestAliases()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(aliases) == 0 {
		fmt.Println("No alias suggestions found.")
		return
	}

	for _, alias := range aliases {
		fmt.Printf("  Consider aliasing: '%s' (used %d times)\n", alias.Command, alias.Frequency)
	}
}

// showStats prints summary statistics about the stored history
func (s *InteractiveSession) showStats() {
	stats, err := s.store.Stats()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Stored records:         %d\n", stats.TotalRecords)
	fmt.Printf("Distinct full commands: %d\n", stats.DistinctFullCommands)
	fmt.Printf("Distinct base commands: %d\n", stats.DistinctBaseCommands)
}

// showReport prints the full three-section report
func (s *InteractiveSession) showReport() {
	top, err := s.analyzer.TopCommands()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	typos, err := s.analyzer.DetectTypos()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	aliases, err := s.analyzer.SuggestAliases()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	writer := NewReportWriter(os.Stdout, s.configManager.GetConfig().Analysis)
	writer.WriteReport(top, typos, aliases)
}

// showHelp prints the interactive command reference
func (s *InteractiveSession) showHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  scan [path]   Ingest a history file (default: configured history)")
	fmt.Println("  top [n]       Show the most frequent commands")
	fmt.Println("  typos         Show probable typos")
	fmt.Println("  aliases       Show alias suggestions")
	fmt.Println("  report        Show the full analysis report")
	fmt.Println("  stats         Show store statistics")
	fmt.Println("  reset         Clear the command store")
	fmt.Println("  exit          Leave interactive mode")
}
