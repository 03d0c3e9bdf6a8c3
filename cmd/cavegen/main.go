// Command cavegen generates deterministic 2D platformer cave levels.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cavegen",
	Short: "Deterministic cave level generator for 2D platformers",
	Long: `cavegen generates tile-based platformer caves from a seed: a wall/floor
grid with a player spawn, a goal, coins, enemies, and strategically placed
platforms. Platform placement raises the fraction of the cave reachable
from the spawn under the jump-physics model; reachability of the goal from
the spawn is not checked. Identical seeds always produce identical levels.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
