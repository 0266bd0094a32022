package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "tokens":
		err = runTokens(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "docfill %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env.Stdout, env.Stderr)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// runHelp prints help for a command.
func runHelp(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitSuccess
	}
	switch args[0] {
	case "tokens":
		printTokensUsage(stdout)
	case "render":
		printRenderUsage(stdout)
	case "serve":
		printServeUsage(stdout)
	case "doctor":
		printDoctorUsage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}
