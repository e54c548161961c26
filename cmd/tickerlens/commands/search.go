package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search tickers by name or symbol",
	Long: `Searches the data provider for tickers matching the query.

Example:
  go run ./cmd/tickerlens search apple
  go run ./cmd/tickerlens search "berkshire hathaway" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchLimit int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := app.analyzer.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%-8s %-40s %s\n", r.Ticker, r.Name, r.Exchange)
	}

	return nil
}
