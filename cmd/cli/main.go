package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "papertrade-cli",
		Short: "PaperTrade CLI tool",
		Long:  `A command line interface for interacting with the PaperTrade API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PaperTrade API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID sent as X-User-ID (when the server runs without JWT)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authentication")

	// Trade commands
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Execute trades",
	}

	buyCmd := &cobra.Command{
		Use:   "buy SYMBOL QUANTITY",
		Short: "Buy shares at the current market price",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			executeTrade("BUY", args[0], args[1])
		},
	}

	sellCmd := &cobra.Command{
		Use:   "sell SYMBOL QUANTITY",
		Short: "Sell shares at the current market price",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			executeTrade("SELL", args[0], args[1])
		},
	}

	tradeCmd.AddCommand(buyCmd, sellCmd)
	rootCmd.AddCommand(tradeCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "portfolio",
		Short: "Show current holdings with market values",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/portfolio")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "balance",
		Short: "Show the account cash balance",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/account")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "transactions",
		Short: "List executed trades, oldest first",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/account/transactions")
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func executeTrade(side, symbol, quantityArg string) {
	quantity, err := parseQuantity(quantityArg)
	if err != nil {
		fmt.Printf("Invalid quantity: %v\n", err)
		os.Exit(1)
	}

	payload, _ := json.Marshal(map[string]any{
		"symbol":   strings.ToUpper(symbol),
		"side":     side,
		"quantity": quantity,
	})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/trades", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status := doRequest(req)
	if status != http.StatusCreated {
		fmt.Printf("Trade FAILED (Status: %d)\nResponse: %s\n", status, body)
		os.Exit(1)
	}

	fmt.Printf("Trade executed\n%s\n", prettyJSON(body))
}

func getJSON(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	body, status := doRequest(req)
	if status != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", status, body)
		os.Exit(1)
	}

	fmt.Println(prettyJSON(body))
}

func doRequest(req *http.Request) (string, int) {
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func parseQuantity(raw string) (int64, error) {
	quantity, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	return quantity, nil
}

func prettyJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}
