package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfeld/cavegen/pkg/export"
)

var renderFlags struct {
	svgPath string
}

var renderCmd = &cobra.Command{
	Use:   "render <level.json>",
	Short: "Render a generated level file",
	Long: `Render prints the ASCII map of an exported level, or writes an SVG
visualization when --svg is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderFlags.svgPath, "svg", "", "write an SVG visualization to this path instead of printing ASCII")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	lvl, err := export.LoadJSONFromFile(args[0])
	if err != nil {
		return err
	}

	if renderFlags.svgPath != "" {
		opts := export.DefaultSVGOptions()
		opts.Title = fmt.Sprintf("Cave (seed %q)", lvl.Seed)
		if err := export.SaveSVGToFile(lvl, renderFlags.svgPath, opts); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}
		fmt.Printf("wrote %s\n", renderFlags.svgPath)
		return nil
	}

	fmt.Println(lvl.RenderText())
	return nil
}
