// hivectl exercises and inspects skip-indexed hive containers from the
// command line: deterministic stress runs, block-layout dumps, and
// invariant verification over replayable workload scripts.
package main

func main() {
	execute()
}
