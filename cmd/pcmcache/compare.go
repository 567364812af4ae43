package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/pcmcache/simulation"
	"github.com/sarchlab/pcmcache/trace"
)

var compareCmd = &cobra.Command{
	Use:   "compare [trace file]",
	Short: "Replay a trace with the energy policy and with LRU",
	Long: `Compare replays the same trace through two identically sized caches, one
using the energy policy and one using LRU, and reports the statistics of
both runs side by side. Runs are not recorded unless --db is given, in
which case each run gets its own database named after its policy.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	addSimFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	path := args[0]

	energySim, err := compareSim(cmd, "energy")
	if err != nil {
		return err
	}
	defer energySim.Terminate()

	lruSim, err := compareSim(cmd, "lru")
	if err != nil {
		return err
	}
	defer lruSim.Terminate()

	var energyResult, lruResult simulation.Result

	var g errgroup.Group
	g.Go(func() error {
		var err error
		energyResult, err = replay(energySim, path)
		return err
	})
	g.Go(func() error {
		var err error
		lruResult, err = replay(lruSim, path)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	printComparison(cmd.OutOrStdout(), energyResult, lruResult)

	return nil
}

// compareSim builds one of the two simulations. Both replays run in the same
// process, so neither gets a monitor.
func compareSim(
	cmd *cobra.Command,
	policyName string,
) (*simulation.Simulation, error) {
	cacheBuilder, err := cacheBuilderFromFlags(cmd, policyName)
	if err != nil {
		return nil, err
	}

	readCost, _ := cmd.Flags().GetFloat64("read-cost")
	writeCost, _ := cmd.Flags().GetFloat64("write-cost")
	snapshotEvery, _ := cmd.Flags().GetUint64("snapshot-every")

	builder := simulation.MakeBuilder().
		WithCacheBuilder(cacheBuilder).
		WithCacheName(policyName).
		WithoutMonitoring().
		WithPCMReadCost(readCost).
		WithPCMWriteCost(writeCost).
		WithSnapshotInterval(snapshotEvery)

	db, _ := cmd.Flags().GetString("db")
	if db == "" {
		builder = builder.WithoutRecording()
	} else {
		builder = builder.WithOutputFileName(db + "_" + policyName)
	}

	return builder.Build(), nil
}

func replay(s *simulation.Simulation, path string) (simulation.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return simulation.Result{}, fmt.Errorf("cannot open trace: %w", err)
	}
	defer file.Close()

	return s.Run(trace.NewReader(file))
}

func printComparison(w io.Writer, energy, lru simulation.Result) {
	fmt.Fprintf(w, "%-12s %14s %14s\n", "", "energy", "lru")
	fmt.Fprintf(w, "%-12s %14d %14d\n", "Hits", energy.Stats.Hits, lru.Stats.Hits)
	fmt.Fprintf(w, "%-12s %14d %14d\n", "Misses", energy.Stats.Misses, lru.Stats.Misses)
	fmt.Fprintf(w, "%-12s %14d %14d\n", "Evictions", energy.Stats.Evictions, lru.Stats.Evictions)
	fmt.Fprintf(w, "%-12s %14d %14d\n", "Write backs", energy.Stats.WriteBacks, lru.Stats.WriteBacks)
	fmt.Fprintf(w, "%-12s %14.1f %14.1f\n", "PCM energy", energy.PCMEnergy, lru.PCMEnergy)

	if lru.PCMEnergy > 0 {
		delta := (energy.PCMEnergy - lru.PCMEnergy) / lru.PCMEnergy * 100
		fmt.Fprintf(w, "\nPCM energy of the energy policy vs LRU: %+.1f%%\n", delta)
	}
}
