package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "pcmcache",
	Short: "pcmcache simulates caches that front phase-change memory and " +
		"scores replacement policies by the PCM traffic they cause.",
	Long: `pcmcache replays memory-access traces against a set-associative ` +
		`write-back cache. Because writing a phase-change memory line costs ` +
		`several times the energy of reading one, the replacement policy ` +
		`decides how expensive a cache is to run. The energy policy weighs ` +
		`recency, frequency, write intensity, dirtiness, and utilization ` +
		`against the asymmetric line costs; lru is the baseline to beat.`,
}

// envInt reads an integer environment variable, falling back to def when the
// variable is unset or malformed. godotenv fills the environment from a .env
// file before commands run.
func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func envString(name string, def string) string {
	v := os.Getenv(name)
	if v == "" {
		return def
	}

	return v
}
