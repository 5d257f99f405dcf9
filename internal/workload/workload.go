// Package workload generates deterministic churn scripts for exercising a
// hive: reproducible interleavings of insertions, erasures, and maintenance
// operations driven by a seed. The CLI tools and benchmarks share these
// scripts so a reported layout or regression can be replayed exactly.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/slabware/skiphive/hive"
)

// Kind identifies one scripted operation.
type Kind int

const (
	Insert Kind = iota
	InsertFill
	Erase      // positional erase at Pos (modulo current length)
	EraseRange // erase N elements starting at Pos
	Reserve
	Trim
	Clear
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case InsertFill:
		return "insert-fill"
	case Erase:
		return "erase"
	case EraseRange:
		return "erase-range"
	case Reserve:
		return "reserve"
	case Trim:
		return "trim"
	case Clear:
		return "clear"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op is one scripted step. Pos and N are interpreted per Kind and clamped
// against the container's state at application time.
type Op struct {
	Kind  Kind
	Pos   int
	N     int
	Value int
}

// Profile weights the operation mix. Weights are relative; zero disables an
// operation.
type Profile struct {
	Insert     int
	InsertFill int
	Erase      int
	EraseRange int
	Reserve    int
	Trim       int
	Clear      int
}

// DefaultProfile is insert-heavy with steady erasure, the mix block reuse
// is designed for.
var DefaultProfile = Profile{
	Insert:     50,
	InsertFill: 8,
	Erase:      30,
	EraseRange: 6,
	Reserve:    3,
	Trim:       2,
	Clear:      1,
}

// Script produces n deterministic operations for the given seed.
func Script(seed int64, n int, p Profile) []Op {
	rng := rand.New(rand.NewSource(seed))
	weights := []int{p.Insert, p.InsertFill, p.Erase, p.EraseRange, p.Reserve, p.Trim, p.Clear}
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return nil
	}

	ops := make([]Op, 0, n)
	value := 0
	for i := 0; i < n; i++ {
		r := rng.Intn(total)
		kind := Insert
		for k, w := range weights {
			if r < w {
				kind = Kind(k)
				break
			}
			r -= w
		}
		op := Op{Kind: kind}
		switch kind {
		case Insert:
			op.Value = value
			value++
		case InsertFill:
			op.N = rng.Intn(32)
			op.Value = value
			value++
		case Erase:
			op.Pos = rng.Intn(1 << 20)
		case EraseRange:
			op.Pos = rng.Intn(1 << 20)
			op.N = 1 + rng.Intn(16)
		case Reserve:
			op.N = rng.Intn(256)
		}
		ops = append(ops, op)
	}
	return ops
}

// Apply runs one op against h, clamping positions and lengths to the
// current contents. It reports whether the op mutated anything.
func Apply(h *hive.Hive[int], op Op) (bool, error) {
	switch op.Kind {
	case Insert:
		_, err := h.Insert(op.Value)
		return true, err
	case InsertFill:
		return op.N > 0, h.InsertFill(op.N, op.Value)
	case Erase:
		if h.Len() == 0 {
			return false, nil
		}
		h.Erase(h.Begin().NextN(op.Pos % h.Len()))
		return true, nil
	case EraseRange:
		if h.Len() == 0 {
			return false, nil
		}
		i := op.Pos % h.Len()
		n := op.N
		if i+n > h.Len() {
			n = h.Len() - i
		}
		if n == 0 {
			return false, nil
		}
		first := h.Begin().NextN(i)
		h.EraseRange(first, first.NextN(n))
		return true, nil
	case Reserve:
		return false, h.Reserve(h.Len() + op.N)
	case Trim:
		h.Trim()
		return false, nil
	case Clear:
		h.Clear()
		return true, nil
	default:
		return false, fmt.Errorf("workload: unknown op kind %d", op.Kind)
	}
}

// Run applies a whole script, validating the container every stride ops
// (stride <= 0 validates only at the end). Returns the number of ops that
// mutated the container.
func Run(h *hive.Hive[int], ops []Op, stride int) (int, error) {
	mutations := 0
	for i, op := range ops {
		mutated, err := Apply(h, op)
		if err != nil {
			return mutations, fmt.Errorf("workload: op %d (%s): %w", i, op.Kind, err)
		}
		if mutated {
			mutations++
		}
		if stride > 0 && i%stride == stride-1 {
			if err := h.Validate(); err != nil {
				return mutations, fmt.Errorf("workload: after op %d (%s): %w", i, op.Kind, err)
			}
		}
	}
	if err := h.Validate(); err != nil {
		return mutations, err
	}
	return mutations, nil
}
