package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yjkwon/cinefeed/client"
	"github.com/yjkwon/cinefeed/session"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer contents and recommendation analytics",
}

// requireAdminAccess runs the access guard before any admin subcommand,
// the same gate the web console places in front of its admin route.
func requireAdminAccess(a *app, cmd *cobra.Command) error {
	guard := session.NewGuard(a.store, a.client, session.RequireAdmin(),
		session.WithCheckingHook(func() {
			fmt.Fprintln(os.Stderr, "checking admin privilege...")
		}))
	switch guard.Evaluate(cmd.Context()) {
	case session.Allowed:
		return nil
	case session.DeniedToHome:
		return fmt.Errorf("admin privilege required")
	default:
		return fmt.Errorf("not logged in: run `cinefeed login`")
	}
}

var statsDays int

var adminDashboardCmd = &cobra.Command{
	Use:   "stats",
	Short: "Recommendation dashboard and per-source stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}
		ctx := cmd.Context()

		dash, err := a.client.RecommendDashboard(ctx, statsDays)
		if err != nil {
			return err
		}
		fmt.Printf("last %d days: %d impressions, %d clicks, CTR %.2f%%\n",
			dash.Days, dash.Impressions, dash.Clicks, dash.CTR*100)
		for _, day := range dash.Daily {
			fmt.Printf("  %s  %5d imp  %4d clicks  %.2f%%\n",
				day.Date, day.Impressions, day.Clicks, day.CTR*100)
		}

		stats, err := a.client.RecommendStatsBySource(ctx, statsDays)
		if err != nil {
			return err
		}
		for _, stat := range stats {
			fmt.Printf("source %-12s %5d imp  %4d clicks  %.2f%%\n",
				stat.Source, stat.Impressions, stat.Clicks, stat.CTR*100)
		}
		return nil
	},
}

var (
	logSource  string
	logUser    int64
	logContent int64
	logClicked string
	logPage    int
)

var adminLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List recommendation impression logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}

		params := client.RecommendLogParams{
			Days:      statsDays,
			Source:    logSource,
			UserID:    logUser,
			ContentID: logContent,
			Page:      logPage,
		}
		if logClicked != "" {
			clicked := logClicked == "true"
			params.Clicked = &clicked
		}

		page, err := a.client.RecommendLogs(cmd.Context(), params)
		if err != nil {
			return err
		}
		for _, entry := range page.Content {
			fmt.Printf("%6d user=%d content=%d source=%-12s clicked=%-5t %s\n",
				entry.ID, entry.UserID, entry.ContentID, entry.Source, entry.Clicked,
				entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("page %d/%d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var adminContentsCmd = &cobra.Command{
	Use:   "contents",
	Short: "Manage the catalog",
}

var adminContentsListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List catalog entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}

		params := client.SearchParams{Type: searchType, Genre: searchGenre, Page: searchPage}
		if len(args) > 0 {
			params.Query = args[0]
		}
		page, err := a.client.AdminContents(cmd.Context(), params)
		if err != nil {
			return err
		}
		printContents(page.Content)
		fmt.Printf("page %d/%d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var contentJSON string

var adminContentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a catalog entry from JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}

		var content client.Content
		if err := json.Unmarshal([]byte(contentJSON), &content); err != nil {
			return fmt.Errorf("parsing --json: %w", err)
		}
		created, err := a.client.CreateContent(cmd.Context(), content)
		if err != nil {
			return err
		}
		fmt.Printf("created content %d: %s\n", created.ID, created.Title)
		return nil
	},
}

var adminContentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a catalog entry from JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid content id %q", args[0])
		}
		var content client.Content
		if err := json.Unmarshal([]byte(contentJSON), &content); err != nil {
			return fmt.Errorf("parsing --json: %w", err)
		}
		updated, err := a.client.UpdateContent(cmd.Context(), id, content)
		if err != nil {
			return err
		}
		fmt.Printf("updated content %d: %s\n", updated.ID, updated.Title)
		return nil
	},
}

var adminContentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireAdminAccess(a, cmd); err != nil {
			return err
		}

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid content id %q", args[0])
		}
		if err := a.client.DeleteContent(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted content %d\n", id)
		return nil
	},
}

func init() {
	adminCmd.PersistentFlags().IntVar(&statsDays, "days", 7, "Trailing window in days")

	adminLogsCmd.Flags().StringVar(&logSource, "source", "", "Filter by recommendation source")
	adminLogsCmd.Flags().Int64Var(&logUser, "user", 0, "Filter by user ID")
	adminLogsCmd.Flags().Int64Var(&logContent, "content", 0, "Filter by content ID")
	adminLogsCmd.Flags().StringVar(&logClicked, "clicked", "", "Filter by click-through (true|false)")
	adminLogsCmd.Flags().IntVar(&logPage, "page", 0, "Page number")

	adminContentsListCmd.Flags().StringVar(&searchType, "type", "", "Filter by type (MOVIE|TV)")
	adminContentsListCmd.Flags().StringVar(&searchGenre, "genre", "", "Filter by genre")
	adminContentsListCmd.Flags().IntVar(&searchPage, "page", 0, "Page number")
	adminContentsCreateCmd.Flags().StringVar(&contentJSON, "json", "", "Content as a JSON object")
	_ = adminContentsCreateCmd.MarkFlagRequired("json")
	adminContentsUpdateCmd.Flags().StringVar(&contentJSON, "json", "", "Content as a JSON object")
	_ = adminContentsUpdateCmd.MarkFlagRequired("json")

	adminContentsCmd.AddCommand(adminContentsListCmd)
	adminContentsCmd.AddCommand(adminContentsCreateCmd)
	adminContentsCmd.AddCommand(adminContentsUpdateCmd)
	adminContentsCmd.AddCommand(adminContentsDeleteCmd)

	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminLogsCmd)
	adminCmd.AddCommand(adminContentsCmd)
	rootCmd.AddCommand(adminCmd)
}
