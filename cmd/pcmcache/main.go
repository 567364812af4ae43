// The pcmcache command replays memory-access traces against a set-associative
// write-back cache and scores replacement policies by the phase-change-memory
// traffic they cause.
package main

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

func main() {
	// A .env file is optional.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
