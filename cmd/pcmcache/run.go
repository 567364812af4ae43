package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pcmcache/datarecording"
	"github.com/sarchlab/pcmcache/simulation"
	"github.com/sarchlab/pcmcache/trace"
)

var runCmd = &cobra.Command{
	Use:   "run [trace file]",
	Short: "Replay a trace through a simulated cache",
	Long: `Run replays a memory-access trace through a simulated cache and reports
the cache statistics and the PCM energy of the run. The run is recorded
to a SQLite database unless --no-recording is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	addSimFlags(runCmd)
	runCmd.Flags().String("policy", "energy",
		"replacement policy, energy or lru")
	runCmd.Flags().String("clickhouse", "",
		"ClickHouse connection string, overrides --db")
	runCmd.Flags().Bool("no-recording", false,
		"do not record the run to a database")
	runCmd.Flags().Bool("monitor", false,
		"serve the monitoring API while the run is in progress")
	runCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring API, 0 picks a free one")
}

func runRun(cmd *cobra.Command, args []string) error {
	builder, err := simBuilderFromFlags(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open trace: %w", err)
	}
	defer file.Close()

	s := builder.Build()
	defer s.Terminate()

	result, err := s.Run(trace.NewReader(file))
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	return nil
}

func simBuilderFromFlags(cmd *cobra.Command) (simulation.Builder, error) {
	policyName, _ := cmd.Flags().GetString("policy")

	cacheBuilder, err := cacheBuilderFromFlags(cmd, policyName)
	if err != nil {
		return simulation.Builder{}, err
	}

	readCost, _ := cmd.Flags().GetFloat64("read-cost")
	writeCost, _ := cmd.Flags().GetFloat64("write-cost")
	snapshotEvery, _ := cmd.Flags().GetUint64("snapshot-every")

	builder := simulation.MakeBuilder().
		WithCacheBuilder(cacheBuilder).
		WithPCMReadCost(readCost).
		WithPCMWriteCost(writeCost).
		WithSnapshotInterval(snapshotEvery)

	monitorOn, _ := cmd.Flags().GetBool("monitor")
	if monitorOn {
		port, _ := cmd.Flags().GetInt("monitor-port")
		if !cmd.Flags().Changed("monitor-port") {
			port = envInt("PCMCACHE_MONITOR_PORT", port)
		}

		if port > 0 {
			builder = builder.WithMonitorPort(port)
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	noRecording, _ := cmd.Flags().GetBool("no-recording")
	if noRecording {
		return builder.WithoutRecording(), nil
	}

	connStr, _ := cmd.Flags().GetString("clickhouse")
	if !cmd.Flags().Changed("clickhouse") {
		connStr = envString("PCMCACHE_CLICKHOUSE", connStr)
	}

	if connStr != "" {
		return builder.WithRecorderConfig(datarecording.RecorderConfig{
			Type:    "clickhouse",
			ConnStr: connStr,
		}), nil
	}

	db, _ := cmd.Flags().GetString("db")
	if !cmd.Flags().Changed("db") {
		db = envString("PCMCACHE_DB", db)
	}

	if db != "" {
		builder = builder.WithOutputFileName(db)
	}

	return builder, nil
}

func printResult(w io.Writer, result simulation.Result) {
	hitRate := 0.0
	if lines := result.Stats.Hits + result.Stats.Misses; lines > 0 {
		hitRate = float64(result.Stats.Hits) / float64(lines)
	}

	fmt.Fprintf(w, "Accesses:    %d\n", result.Accesses)
	fmt.Fprintf(w, "Cycles:      %d\n", result.Cycles)
	fmt.Fprintf(w, "Reads:       %d\n", result.Stats.Reads)
	fmt.Fprintf(w, "Writes:      %d\n", result.Stats.Writes)
	fmt.Fprintf(w, "Hits:        %d (%.1f%%)\n", result.Stats.Hits, hitRate*100)
	fmt.Fprintf(w, "Misses:      %d\n", result.Stats.Misses)
	fmt.Fprintf(w, "Evictions:   %d\n", result.Stats.Evictions)
	fmt.Fprintf(w, "Write backs: %d\n", result.Stats.WriteBacks)
	fmt.Fprintf(w, "PCM energy:  %.1f\n", result.PCMEnergy)
}
