package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "xtree",
	Short: "render implicit surfaces with adaptive dual contouring",
	Long: `xtree renders a small library of built-in implicit shapes
(sphere, plane, box, torus, circle) into a triangle mesh or 2D contour set using
adaptive octree/quadtree dual contouring, prints build settings files,
and reports mesh statistics.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
