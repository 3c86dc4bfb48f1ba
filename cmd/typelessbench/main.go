// Package main provides the typelessbench CLI tool.
//
// Usage:
//
//	typelessbench [flags]
//	typelessbench config [flags]
//
// typelessbench measures a builtin slice against the type-erased vector
// with and without runtime type checks, and writes the results as a
// pandas "split" JSON table.
//
// Configuration:
//
//	Settings come from defaults, an optional YAML file (-c), TYPELESSBENCH_*
//	environment variables and flags, in increasing order of precedence.
//	Use 'typelessbench config' to print the effective configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pavanmanishd/typeless/cmd/typelessbench/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
