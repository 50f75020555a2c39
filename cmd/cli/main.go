package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "armory-cli",
		Short: "Armory CLI tool",
		Long:  `A command line interface for interacting with the Armory inventory API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Armory API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("ARMORY_TOKEN"), "Bearer token for authenticated requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Balance commands
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance operations",
	}
	balanceCmd.AddCommand(calculateBalanceCmd(), balanceSummaryCmd())
	rootCmd.AddCommand(balanceCmd)

	// Reference data commands
	basesCmd := &cobra.Command{
		Use:   "bases",
		Short: "List bases",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/bases/")
		},
	}
	rootCmd.AddCommand(basesCmd)

	equipmentCmd := &cobra.Command{
		Use:   "equipment",
		Short: "List equipment",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/equipment/")
		},
	}
	rootCmd.AddCommand(equipmentCmd)

	rootCmd.AddCommand(loginCmd(), hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func calculateBalanceCmd() *cobra.Command {
	var baseID, equipmentID, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate and store a balance snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{
				"base_id":      baseID,
				"equipment_id": equipmentID,
			}
			if startDate != "" {
				payload["start_date"] = startDate
			}
			if endDate != "" {
				payload["end_date"] = endDate
			}
			postJSON("/api/balances/calculate", payload)
		},
	}

	cmd.Flags().StringVar(&baseID, "base", "", "Base id")
	cmd.Flags().StringVar(&equipmentID, "equipment", "", "Equipment id")
	cmd.Flags().StringVar(&startDate, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "Period end (YYYY-MM-DD)")
	cmd.MarkFlagRequired("base")
	cmd.MarkFlagRequired("equipment")

	return cmd
}

func balanceSummaryCmd() *cobra.Command {
	var baseID, equipmentID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "List balance snapshots with totals",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/balances/summary?base_id=" + baseID
			if equipmentID != "" {
				path += "&equipment_id=" + equipmentID
			}
			getJSON(path)
		},
	}

	cmd.Flags().StringVar(&baseID, "base", "", "Base id filter")
	cmd.Flags().StringVar(&equipmentID, "equipment", "", "Equipment id filter")

	return cmd
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a token",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/auth/login", map[string]string{
				"username": username,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func getJSON(path string) {
	doRequest(http.MethodGet, path, nil)
}

func postJSON(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode payload: %v\n", err)
		os.Exit(1)
	}
	doRequest(http.MethodPost, path, bytes.NewReader(body))
}

func doRequest(method, path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(raw), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
