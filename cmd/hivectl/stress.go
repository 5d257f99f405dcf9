package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/slabware/skiphive/hive"
	"github.com/slabware/skiphive/internal/workload"
)

var (
	stressOps      int
	stressSeed     int64
	stressMin      int
	stressMax      int
	stressValidate int
)

// Runtime escape hatch for per-op logging during long stress runs.
var logStress = os.Getenv("HIVE_LOG_STRESS") != ""

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 100_000, "Number of workload operations")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Workload seed (identical seeds replay identical runs)")
	cmd.Flags().IntVar(&stressMin, "min-block", 8, "Minimum block capacity")
	cmd.Flags().IntVar(&stressMax, "max-block", 1024, "Maximum block capacity")
	cmd.Flags().IntVar(&stressValidate, "validate-every", 0, "Validate invariants every N ops (0 = only at the end)")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a deterministic churn workload and report on the result",
		Long: `The stress command builds a hive, applies a seeded workload of mixed
insertions, erasures, and maintenance operations, validates every
structural invariant, and reports timing plus final storage statistics.

Example:
  hivectl stress --ops 1000000 --seed 7
  hivectl stress --ops 50000 --min-block 4 --max-block 16 --validate-every 100 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// StressReport is the JSON shape of a stress run summary.
type StressReport struct {
	RunID     string        `json:"run_id"`
	Seed      int64         `json:"seed"`
	Ops       int           `json:"ops"`
	Mutations int           `json:"mutations"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	OpsPerSec float64       `json:"ops_per_sec"`
	Len       int           `json:"len"`
	Cap       int           `json:"cap"`
	Blocks    int           `json:"blocks"`
	Unused    int           `json:"unused"`
	Holes     int           `json:"holes"`
	Runs      int           `json:"runs"`
}

func runStress() error {
	h, err := hive.NewWithLimits[int](stressMin, stressMax)
	if err != nil {
		return fmt.Errorf("configuring hive: %w", err)
	}

	printVerbose("Generating %d ops for seed %d\n", stressOps, stressSeed)
	ops := workload.Script(stressSeed, stressOps, workload.DefaultProfile)

	start := time.Now()
	mutations := 0
	for i, op := range ops {
		mutated, err := workload.Apply(h, op)
		if err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
		if mutated {
			mutations++
		}
		if logStress {
			fmt.Fprintf(os.Stderr, "[STRESS] %6d %-12s len=%d cap=%d\n", i, op.Kind, h.Len(), h.Cap())
		}
		if stressValidate > 0 && i%stressValidate == stressValidate-1 {
			if err := h.Validate(); err != nil {
				return fmt.Errorf("after op %d (%s): %w", i, op.Kind, err)
			}
		}
	}
	elapsed := time.Since(start)

	if err := h.Validate(); err != nil {
		return fmt.Errorf("final validation: %w", err)
	}

	st := h.Stats()
	report := StressReport{
		RunID:     uuid.NewString(),
		Seed:      stressSeed,
		Ops:       stressOps,
		Mutations: mutations,
		Elapsed:   elapsed,
		OpsPerSec: float64(stressOps) / elapsed.Seconds(),
		Len:       st.Len,
		Cap:       st.Cap,
		Blocks:    st.Blocks,
		Unused:    st.Unused,
		Holes:     st.Holes,
		Runs:      st.Runs,
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printInfo("run %s: %d ops (%d mutations) in %s (%.0f ops/s)\n",
		report.RunID, report.Ops, report.Mutations, report.Elapsed.Round(time.Millisecond), report.OpsPerSec)
	printInfo("final: len=%d cap=%d blocks=%d unused=%d holes=%d runs=%d\n",
		report.Len, report.Cap, report.Blocks, report.Unused, report.Holes, report.Runs)
	printInfo("all invariants hold\n")
	return nil
}
