package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the CLI command tree
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hindsight [history-file]",
		Short: "Analyze shell history for frequent commands, typos and alias candidates",
		Long: `hindsight ingests a shell history file into a local SQLite log and
reports the most frequent commands, probable typos (rare commands one
edit away from an established command) and alias candidates for long,
frequently-used commands.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyPath := ""
			if len(args) > 0 {
				historyPath = args[0]
			}
			return runAnalysis(historyPath)
		},
	}

	rootCmd.AddCommand(newInteractiveCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// newInteractiveCommand builds the interactive-mode subcommand
func newInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Explore stored history in an interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, store, analyzer, parser, err := setup()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return err
			}
			defer store.Close()

			session := NewInteractiveSession(cm, store, analyzer, parser)
			return session.Run()
		},
	}
}

// newVersionCommand builds the version subcommand
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information and check for updates",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(GetVersionInfo())

			checker := NewUpdateChecker("")
			latest, hasUpdate, err := checker.CheckForUpdate(GetVersionShort())
			if err != nil {
				// Update checks are best effort; failure is not fatal
				return
			}
			if hasUpdate {
				fmt.Printf("\nA newer version is available: %s\n", latest)
			}
		},
	}
}

// setup wires the configuration, store, analyzer and parser together.
// A store that cannot be opened is fatal; nothing useful can happen
// without persistence.
func setup() (*ConfigManager, *CommandStore, *Analyzer, *HistoryParser, error) {
	cm, err := NewConfigManager()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cm.Initialize(); err != nil {
		return nil, nil, nil, nil, err
	}

	rules, err := LoadRules(cm.RulesPath())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store := NewCommandStore(cm.DatabasePath())
	if err := store.Initialize(); err != nil {
		return nil, nil, nil, nil, err
	}

	analyzer := NewAnalyzer(store, cm.GetConfig().Analysis)
	analyzer.SetKnownCommands(rules.KnownCommands)

	parser := NewHistoryParser(rules.ExcludePatterns)

	return cm, store, analyzer, parser, nil
}

// runAnalysis ingests the history file and prints the full report. A
// missing history file is reported but analysis still runs over whatever
// was previously stored.
func runAnalysis(historyPath string) error {
	cm, store, analyzer, parser, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	defer store.Close()

	if historyPath == "" {
		historyPath = cm.HistoryPath()
	}

	if _, err := os.Stat(historyPath); os.IsNotExist(err) {
		fmt.Printf("Error: file %s not found.\n", historyPath)
	} else {
		fmt.Printf("Reading from %s...\n", historyPath)
		if _, err := parser.ParseHistoryFile(historyPath, store); err != nil {
			fmt.Println("Error reading file:", err)
		}
	}

	top, err := analyzer.TopCommands()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	typos, err := analyzer.DetectTypos()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	aliases, err := analyzer.SuggestAliases()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	writer := NewReportWriter(os.Stdout, cm.GetConfig().Analysis)
	writer.WriteReport(top, typos, aliases)

	return nil
}
