package cmd

import (
	"github.com/chris-regnier/diarypad/internal/ui"
	"github.com/spf13/cobra"
)

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List the available moods",
	Long:  "List the eight moods an entry can be tagged with, in picker order. Scripts accept either the symbol or the name.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.FormatMoods(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moodsCmd)
}
