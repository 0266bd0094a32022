package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}
