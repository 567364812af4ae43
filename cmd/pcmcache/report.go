package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pcmcache/datarecording"
)

var reportCmd = &cobra.Command{
	Use:   "report [database file]",
	Short: "Summarize a recorded run",
	Long: `Report reads the database written by a recorded run and prints the run
parameters, an eviction summary, and the last counter snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("cache", "Cache",
		"name of the cache to summarize snapshots for")
}

func runReport(cmd *cobra.Command, args []string) error {
	reader, err := datarecording.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	w := cmd.OutOrStdout()

	info, err := reader.RunInfo()
	if err != nil {
		return err
	}

	for _, property := range info {
		fmt.Fprintf(w, "%-20s %s\n", property.Property+":", property.Value)
	}

	evictions, err := reader.Evictions()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nEvictions:           %d (%d dirty)\n",
		evictions.Count, evictions.DirtyCount)
	if evictions.Count > 0 {
		fmt.Fprintf(w, "Average victim cost: %.4f\n", evictions.AverageCost)
		fmt.Fprintf(w, "Highest victim cost: %.4f\n", evictions.MaxCost)
	}

	cacheName, _ := cmd.Flags().GetString("cache")
	last, err := reader.LastSnapshot(cacheName)
	if errors.Is(err, sql.ErrNoRows) {
		// Runs with snapshots disabled have no counters to show.
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nCounters of %s at cycle %d:\n", cacheName, last.Cycle)
	fmt.Fprintf(w,
		"  reads %d, writes %d, hits %d, misses %d, evictions %d, write backs %d\n",
		last.Reads, last.Writes, last.Hits, last.Misses,
		last.Evictions, last.WriteBacks)

	return nil
}
