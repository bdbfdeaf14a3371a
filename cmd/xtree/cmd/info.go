package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/xtree"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "show the settings a build settings file carries",
	Long: `Read a build settings YAML file and print its values on standard
output. The values are not validated.`,
	Args: cobra.ExactArgs(1),
	Run:  doInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func doInfo(cmd *cobra.Command, args []string) {
	var cfg xtree.Config
	if err := unmarshalYAMLFile(args[0], &cfg); err != nil {
		check(err)
	}
	fmt.Printf("search_count:             %d\n", cfg.SearchCount)
	fmt.Printf("jitter_count:             %d\n", cfg.JitterCount)
	fmt.Printf("batch_width:              %d\n", cfg.BatchWidth)
	fmt.Printf("rank_threshold:           %v\n", cfg.RankThreshold)
	fmt.Printf("collapse_error_threshold: %v\n", cfg.CollapseErrorThreshold)
}
