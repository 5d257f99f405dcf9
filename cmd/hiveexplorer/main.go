// hiveexplorer is an interactive TUI for watching a hive container evolve
// under a deterministic workload: step through operations one at a time and
// see blocks fill, erasure runs form and merge, and parked blocks come back.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var (
		seed     = flag.Int64("seed", 1, "workload seed")
		ops      = flag.Int("ops", 2000, "number of scripted operations")
		minBlock = flag.Int("min-block", 8, "minimum block capacity")
		maxBlock = flag.Int("max-block", 32, "maximum block capacity")
	)
	flag.Parse()

	m, err := NewModel(*seed, *ops, *minBlock, *maxBlock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
