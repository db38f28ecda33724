package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yjkwon/cinefeed/client"
)

var browseSize int

var browseCmd = &cobra.Command{
	Use:   "browse {trending|new|top-rated}",
	Short: "Browse the public catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		var items []client.Content
		switch args[0] {
		case "trending":
			items, err = a.client.Trending(ctx, browseSize)
		case "new":
			items, err = a.client.NewReleases(ctx, browseSize)
		case "top-rated":
			items, err = a.client.TopRated(ctx, browseSize)
		default:
			return fmt.Errorf("unknown listing %q", args[0])
		}
		if err != nil {
			return err
		}
		printContents(items)
		return nil
	},
}

var (
	searchType      string
	searchGenre     string
	searchSort      string
	searchDirection string
	searchPage      int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		params := client.SearchParams{
			Type:      searchType,
			Genre:     searchGenre,
			Sort:      searchSort,
			Direction: searchDirection,
			Page:      searchPage,
			Size:      browseSize,
		}
		if len(args) > 0 {
			params.Query = args[0]
		}

		page, err := a.client.SearchContents(cmd.Context(), params)
		if err != nil {
			return err
		}
		printContents(page.Content)
		fmt.Printf("page %d/%d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

func printContents(items []client.Content) {
	for _, c := range items {
		fmt.Printf("%4d  %-5s %-30s %.1f  %s\n", c.ID, c.Type, c.Title, c.Rating, c.Genres)
	}
}

func init() {
	browseCmd.Flags().IntVar(&browseSize, "size", 10, "Number of entries")
	searchCmd.Flags().IntVar(&browseSize, "size", 10, "Page size")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by type (MOVIE|TV)")
	searchCmd.Flags().StringVar(&searchGenre, "genre", "", "Filter by genre")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort key (id|releaseDate|rating|viewCount)")
	searchCmd.Flags().StringVar(&searchDirection, "direction", "desc", "Sort direction (asc|desc)")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "Page number")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
}
