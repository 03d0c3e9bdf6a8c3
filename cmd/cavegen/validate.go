package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfeld/cavegen/pkg/export"
	"github.com/mfeld/cavegen/pkg/physics"
	"github.com/mfeld/cavegen/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <level.json>",
	Short: "Validate a previously generated level file",
	Long: `Validate re-checks an exported level against the generator's invariants:
closed border, grounded spawn and goal, coin pockets, platform stamping, and
reachability from the spawn. Exit code 0 means the level passed.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	lvl, err := export.LoadJSONFromFile(args[0])
	if err != nil {
		return err
	}

	validator := validation.NewValidator(physics.DefaultConstants())
	report, err := validator.Validate(lvl)
	if err != nil {
		return err
	}

	for _, check := range report.Checks {
		status := "ok"
		if !check.Satisfied {
			status = "FAIL"
		}
		fmt.Printf("  %-14s %-4s %s\n", check.Name, status, check.Details)
	}
	fmt.Printf("reachable: %.1f%%  floor: %d  platform tiles: %d  spawn-goal distance: %.1f\n",
		report.Metrics.ReachableFraction*100, report.Metrics.FloorTiles,
		report.Metrics.PlatformTiles, report.Metrics.SpawnGoalDistance)

	if !report.Passed {
		return fmt.Errorf("level failed validation: %v", report.Errors)
	}
	fmt.Println("level passed validation")
	return nil
}
