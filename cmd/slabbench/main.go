// Command slabbench is the process-level stress harness spec.md treats
// as an external collaborator to the allocator library: it spawns real
// OS threads (goroutines) against a shared Cache and drives the
// concurrent alloc/free workload described in spec.md's scenario S5,
// outside of `go test`.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "slabbench",
	Short:   "Stress and inspect a goslab Cache",
	Long:    `slabbench drives a goslab.Cache with concurrent workers and can dump its internal state for manual inspection.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print per-worker progress")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
