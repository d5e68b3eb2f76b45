package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	eventID    string
	categories string
	championID string
	players    string
	dryRun     bool
)

func init() {
	planCmd.Flags().StringVar(&eventID, "event", "", "The event to plan")
	planCmd.Flags().StringVar(&categories, "categories", "", "Comma-separated categories, e.g. MENS_DOUBLES,MIXED_DOUBLES")
	planCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan without persisting anything")
	planCmd.MarkFlagRequired("event")

	closeCmd.Flags().StringVar(&eventID, "event", "", "The event to close")
	closeCmd.Flags().StringVar(&championID, "champion", "", "Champion player id for resolving a first-place tie")
	closeCmd.MarkFlagRequired("event")

	recordCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the result without persisting it")

	leaderboardCmd.Flags().StringVar(&eventID, "event", "", "The event whose leaderboard to fetch")
	leaderboardCmd.MarkFlagRequired("event")

	rosterCmd.Flags().StringVar(&eventID, "event", "", "The event whose roster to fetch")
	rosterCmd.MarkFlagRequired("event")

	recalcCmd.Flags().StringVar(&players, "players", "", "Comma-separated player ids; empty means everyone")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List an event's signed-up roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/roster?eventID=" + url.QueryEscape(eventID))
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate matches for an event's roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("eventID", eventID)
		q.Set("categories", categories)
		if dryRun {
			q.Set("dry_run", "true")
		}
		return performPostRequest("/plan-event?"+q.Encode(), "", nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record [result.json]",
	Short: "Record a match result from a JSON file (or stdin with '-')",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var body io.Reader
		if args[0] == "-" {
			body = os.Stdin
		} else {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open result file: %w", err)
			}
			defer f.Close()
			body = f
		}
		endpoint := "/record-result"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, "application/json", body)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Score an event and lock its leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("eventID", eventID)
		if championID != "" {
			q.Set("championID", championID)
		}
		return performPostRequest("/close-event?"+q.Encode(), "", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Fetch an event's leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?eventID=" + url.QueryEscape(eventID))
	},
}

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate player strengths",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if players != "" {
			q.Set("players", players)
		}
		endpoint := "/recalc"
		if encoded := q.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		return performPostRequest(endpoint, "", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, contentType string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	if body == nil {
		body = strings.NewReader("")
	}
	resp, err := http.Post(url, contentType, body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
