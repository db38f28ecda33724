package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedSize    int
	feedReasons bool
	feedClick   int64
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show your personalized recommendation feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		if feedClick > 0 {
			if err := a.client.ReportClick(ctx, feedClick); err != nil {
				return err
			}
			fmt.Println("click recorded")
			return nil
		}

		if feedReasons {
			recs, err := a.client.ForYouWithReasons(ctx, feedSize)
			if err != nil {
				return err
			}
			for _, rec := range recs {
				fmt.Printf("[%d] %-30s %.1f  %s\n", rec.LogID, rec.Content.Title, rec.Content.Rating, rec.Reason)
			}
			return nil
		}

		recs, err := a.client.ForYou(ctx, feedSize)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fmt.Printf("[%d] %-30s %.1f  (%s)\n", rec.LogID, rec.Content.Title, rec.Content.Rating, rec.Source)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedSize, "size", 20, "Feed length")
	feedCmd.Flags().BoolVar(&feedReasons, "reasons", false, "Include per-item explanations")
	feedCmd.Flags().Int64Var(&feedClick, "click", 0, "Record a click on the given impression ID instead")

	rootCmd.AddCommand(feedCmd)
}
