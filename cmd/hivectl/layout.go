package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slabware/skiphive/hive"
	"github.com/slabware/skiphive/internal/workload"
)

var (
	layoutOps  int
	layoutSeed int64
	layoutMin  int
	layoutMax  int
)

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().IntVar(&layoutOps, "ops", 500, "Number of workload operations before the dump")
	cmd.Flags().Int64Var(&layoutSeed, "seed", 1, "Workload seed")
	cmd.Flags().IntVar(&layoutMin, "min-block", 8, "Minimum block capacity")
	cmd.Flags().IntVar(&layoutMax, "max-block", 64, "Maximum block capacity")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Dump the block layout after a seeded workload",
		Long: `The layout command replays a seeded workload and prints each block's
slot map: live runs, erased runs, and unfilled trailing capacity.

Example:
  hivectl layout --ops 2000 --seed 3 --max-block 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
}

func runLayout() error {
	h, err := hive.NewWithLimits[int](layoutMin, layoutMax)
	if err != nil {
		return fmt.Errorf("configuring hive: %w", err)
	}
	ops := workload.Script(layoutSeed, layoutOps, workload.DefaultProfile)
	if _, err := workload.Run(h, ops, 0); err != nil {
		return err
	}

	layout := h.BlockLayout()
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(layout)
	}

	st := h.Stats()
	printInfo("len=%d cap=%d blocks=%d unused=%d holes=%d runs=%d\n\n",
		st.Len, st.Cap, st.Blocks, st.Unused, st.Holes, st.Runs)
	for _, bs := range layout {
		printInfo("block %-3d cap=%-5d live=%-5d %s\n", bs.Number, bs.Capacity, bs.Live, renderBlock(bs))
	}
	return nil
}

// renderBlock draws a block's used region as one character per slot:
// '#' live, '.' erased, '_' never filled.
func renderBlock(bs hive.BlockStats) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, run := range bs.Runs {
		ch := byte('#')
		if run.Erased {
			ch = '.'
		}
		for i := 0; i < run.Len; i++ {
			sb.WriteByte(ch)
		}
	}
	for i := bs.LastEndpoint; i < bs.Capacity; i++ {
		sb.WriteByte('_')
	}
	sb.WriteByte(']')
	return sb.String()
}
