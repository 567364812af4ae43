package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pcmcache/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate [trace file]",
	Short: "Synthesize a memory-access trace",
	Long: `Generate writes a synthetic memory-access trace. Accesses split between a
small working set of hot lines and the rest of memory, so the trace has
tunable temporal locality.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := trace.DefaultGeneratorParams()
	generateCmd.Flags().Int64("seed", defaults.Seed,
		"random seed")
	generateCmd.Flags().Int("accesses", defaults.NumAccesses,
		"number of accesses to generate")
	generateCmd.Flags().Uint64("mem-size", defaults.MemSize,
		"size of the address space in bytes")
	generateCmd.Flags().Uint32("block-size", defaults.BlockSize,
		"line size in bytes")
	generateCmd.Flags().Int("working-set", defaults.WorkingSet,
		"number of hot lines")
	generateCmd.Flags().Float64("locality", defaults.Locality,
		"fraction of accesses that go to hot lines")
	generateCmd.Flags().Float64("write-fraction", defaults.WriteFraction,
		"fraction of accesses that are writes")
	generateCmd.Flags().Uint64("max-gap", defaults.MaxGap,
		"largest cycle gap between consecutive accesses")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params := trace.DefaultGeneratorParams()
	params.Seed, _ = cmd.Flags().GetInt64("seed")
	params.NumAccesses, _ = cmd.Flags().GetInt("accesses")
	params.MemSize, _ = cmd.Flags().GetUint64("mem-size")
	params.BlockSize, _ = cmd.Flags().GetUint32("block-size")
	params.WorkingSet, _ = cmd.Flags().GetInt("working-set")
	params.Locality, _ = cmd.Flags().GetFloat64("locality")
	params.WriteFraction, _ = cmd.Flags().GetFloat64("write-fraction")
	params.MaxGap, _ = cmd.Flags().GetUint64("max-gap")

	generator := trace.NewGenerator(params)

	writer := trace.NewWriter(args[0])
	writer.Init()

	count := 0
	for {
		access, ok := generator.Next()
		if !ok {
			break
		}

		writer.Write(access)
		count++
	}

	writer.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d accesses to %s\n", count, args[0])

	return nil
}
