package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pcmcache/cache"
	"github.com/sarchlab/pcmcache/replacement"
)

// addSimFlags registers the flags that configure a simulated cache. They are
// shared between the run and compare commands.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("cache-size", 32*1024,
		"cache size in bytes")
	cmd.Flags().Int("ways", 4,
		"way associativity")
	cmd.Flags().Uint32("block-size", 64,
		"line size in bytes")
	cmd.Flags().Uint("frequency-bits", 4,
		"access counter width in bits")
	cmd.Flags().Uint("write-bits", 4,
		"write counter width in bits")
	cmd.Flags().Float64("recency-weight", 0.3,
		"weight of the recency factor")
	cmd.Flags().Float64("frequency-weight", 0.2,
		"weight of the frequency factor")
	cmd.Flags().Float64("write-weight", 0.2,
		"weight of the write intensity factor")
	cmd.Flags().Float64("dirty-weight", 0.2,
		"weight of the dirty factor")
	cmd.Flags().Float64("utilization-weight", 0.1,
		"weight of the utilization factor")
	cmd.Flags().Float64("read-cost", 1.0,
		"energy of one PCM line read")
	cmd.Flags().Float64("write-cost", 5.0,
		"energy of one PCM line write")
	cmd.Flags().Uint64("snapshot-every", 10000,
		"accesses between stats snapshots, 0 disables")
	cmd.Flags().String("db", "",
		"database file for recording, without the .sqlite3 suffix")
}

// policyFromFlags assembles the named replacement policy from the flags of
// cmd.
func policyFromFlags(
	cmd *cobra.Command,
	name string,
) (replacement.Policy, error) {
	blockSize, _ := cmd.Flags().GetUint32("block-size")
	frequencyBits, _ := cmd.Flags().GetUint("frequency-bits")
	writeBits, _ := cmd.Flags().GetUint("write-bits")

	switch name {
	case "energy":
		recencyWeight, _ := cmd.Flags().GetFloat64("recency-weight")
		frequencyWeight, _ := cmd.Flags().GetFloat64("frequency-weight")
		writeWeight, _ := cmd.Flags().GetFloat64("write-weight")
		dirtyWeight, _ := cmd.Flags().GetFloat64("dirty-weight")
		utilizationWeight, _ := cmd.Flags().GetFloat64("utilization-weight")
		readCost, _ := cmd.Flags().GetFloat64("read-cost")
		writeCost, _ := cmd.Flags().GetFloat64("write-cost")

		return replacement.MakeBuilder().
			WithFrequencyBits(frequencyBits).
			WithWriteBits(writeBits).
			WithRecencyWeight(recencyWeight).
			WithFrequencyWeight(frequencyWeight).
			WithWriteWeight(writeWeight).
			WithDirtyWeight(dirtyWeight).
			WithUtilizationWeight(utilizationWeight).
			WithPCMReadCost(readCost).
			WithPCMWriteCost(writeCost).
			WithBlockSize(blockSize).
			Build(), nil

	case "lru":
		return replacement.NewLRU(frequencyBits, writeBits, blockSize), nil

	default:
		return nil, fmt.Errorf("unknown policy %q, want energy or lru", name)
	}
}

// cacheBuilderFromFlags assembles a cache builder, without a clock, for the
// named policy.
func cacheBuilderFromFlags(
	cmd *cobra.Command,
	policyName string,
) (cache.Builder, error) {
	policy, err := policyFromFlags(cmd, policyName)
	if err != nil {
		return cache.Builder{}, err
	}

	cacheSize, _ := cmd.Flags().GetUint64("cache-size")
	ways, _ := cmd.Flags().GetInt("ways")
	blockSize, _ := cmd.Flags().GetUint32("block-size")

	return cache.MakeBuilder().
		WithByteSize(cacheSize).
		WithWayAssociativity(ways).
		WithBlockSize(blockSize).
		WithPolicy(policy), nil
}
