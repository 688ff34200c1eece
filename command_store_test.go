package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *CommandStore {
	t.Helper()

	store := NewCommandStore(filepath.Join(t.TempDir(), "history.db"))
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func appendCommands(t *testing.T, store *CommandStore, commands ...string) {
	t.Helper()

	parser := NewHistoryParser(nil)
	var records []CommandRecord
	for _, command := range commands {
		record, ok := parser.ParseLine(command)
		if !ok {
			t.Fatalf("Test command %q was rejected by the parser", command)
		}
		records = append(records, record)
	}
	if err := store.AppendBatch(records); err != nil {
		t.Fatalf("Failed to append commands: %v", err)
	}
}

func TestCommandStoreFrequencies(t *testing.T) {
	store := newTestStore(t)

	appendCommands(t, store,
		"git status",
		"ls",
		"git status",
		"ls",
		"ls",
		"git push",
	)

	t.Run("ByFullCommand", func(t *testing.T) {
		entries, err := store.FrequenciesByFullCommand()
		if err != nil {
			t.Fatalf("FrequenciesByFullCommand failed: %v", err)
		}

		want := []FrequencyEntry{
			{Command: "ls", Count: 3},
			{Command: "git status", Count: 2},
			{Command: "git push", Count: 1},
		}
		if len(entries) != len(want) {
			t.Fatalf("Got %d entries, want %d", len(entries), len(want))
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
			}
		}
	})

	t.Run("ByBaseCommand", func(t *testing.T) {
		entries, err := store.FrequenciesByBaseCommand()
		if err != nil {
			t.Fatalf("FrequenciesByBaseCommand failed: %v", err)
		}

		// git appears 3 times and ls 3 times; git was inserted first so
		// it comes first on the tie
		if len(entries) != 2 {
			t.Fatalf("Got %d entries, want 2", len(entries))
		}
		if entries[0].Command != "git" || entries[0].Count != 3 {
			t.Errorf("entries[0] = %+v, want git/3", entries[0])
		}
		if entries[1].Command != "ls" || entries[1].Count != 3 {
			t.Errorf("entries[1] = %+v, want ls/3", entries[1])
		}
	})
}

func TestCommandStoreTieBreakByFirstInsertion(t *testing.T) {
	store := newTestStore(t)

	// zeta first, alpha second, both count 2: insertion order must win
	// over any lexicographic order
	appendCommands(t, store, "zeta", "alpha", "zeta", "alpha")

	entries, err := store.FrequenciesByBaseCommand()
	if err != nil {
		t.Fatalf("FrequenciesByBaseCommand failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Got %d entries, want 2", len(entries))
	}
	if entries[0].Command != "zeta" || entries[1].Command != "alpha" {
		t.Errorf("Tie not broken by first insertion: %+v", entries)
	}
}

func TestCommandStoreCountsAreTotal(t *testing.T) {
	store := newTestStore(t)

	commands := []string{"ls", "ls -la", "git status", "git status", "make", "make test", "make"}
	appendCommands(t, store, commands...)

	for _, grouping := range []string{"full", "base"} {
		var entries []FrequencyEntry
		var err error
		if grouping == "full" {
			entries, err = store.FrequenciesByFullCommand()
		} else {
			entries, err = store.FrequenciesByBaseCommand()
		}
		if err != nil {
			t.Fatalf("Frequency query (%s) failed: %v", grouping, err)
		}

		total := 0
		for _, entry := range entries {
			if entry.Count < 1 {
				t.Errorf("Count below 1 in %s grouping: %+v", grouping, entry)
			}
			total += entry.Count
		}
		if total != len(commands) {
			t.Errorf("Sum of %s counts = %d, want %d", grouping, total, len(commands))
		}
	}
}

func TestCommandStoreReset(t *testing.T) {
	store := newTestStore(t)

	appendCommands(t, store, "ls", "pwd")
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRecords != 0 {
		t.Errorf("TotalRecords after reset = %d, want 0", stats.TotalRecords)
	}
}

func TestCommandStoreUninitialized(t *testing.T) {
	store := NewCommandStore(filepath.Join(t.TempDir(), "history.db"))

	if err := store.Append(CommandRecord{FullCommand: "ls", BaseCommand: "ls"}); err == nil {
		t.Error("Append on uninitialized store did not fail")
	}
	if _, err := store.FrequenciesByFullCommand(); err == nil {
		t.Error("Frequency query on uninitialized store did not fail")
	}
}

func TestEndToEndAnalysis(t *testing.T) {
	tempDir := t.TempDir()

	// The canonical scenario: a frequent command, one typo of it, and a
	// frequent short command that must stay out of the typo low set
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, "git status")
	}
	lines = append(lines, "gti status")
	for i := 0; i < 20; i++ {
		lines = append(lines, "ls")
	}

	historyPath := filepath.Join(tempDir, "bash_history")
	if err := os.WriteFile(historyPath, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write history file: %v", err)
	}

	store := NewCommandStore(filepath.Join(tempDir, "history.db"))
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	parser := NewHistoryParser(nil)
	if _, err := parser.ParseHistoryFile(historyPath, store); err != nil {
		t.Fatalf("ParseHistoryFile failed: %v", err)
	}

	analyzer := NewAnalyzer(store, DefaultAnalysisConfig())

	typos, err := analyzer.DetectTypos()
	if err != nil {
		t.Fatalf("DetectTypos failed: %v", err)
	}
	if len(typos) != 1 {
		t.Fatalf("Expected exactly 1 typo, got %d: %v", len(typos), typos)
	}
	want := TypoSuggestion{Typo: "gti", Suggestion: "git", Frequency: 1}
	if typos[0] != want {
		t.Errorf("Typo = %+v, want %+v", typos[0], want)
	}

	top, err := analyzer.TopCommands()
	if err != nil {
		t.Fatalf("TopCommands failed: %v", err)
	}
	if top[0].Command != "ls" || top[0].Count != 20 {
		t.Errorf("Top command = %+v, want ls/20", top[0])
	}
}
