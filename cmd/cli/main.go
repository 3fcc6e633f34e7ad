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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "transferd-cli",
		Short: "transferd CLI tool",
		Long:  `A command line interface for interacting with the transferd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the transferd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Transfer commands
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer operations",
	}

	var (
		sendUser        string
		sendAmount      string
		sendCurrency    string
		sendSource      string
		sendDestination string
		sendRecipient   string
	)

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Initiate a cross-border transfer",
		Run: func(cmd *cobra.Command, args []string) {
			sendTransfer(sendUser, sendAmount, sendCurrency, sendSource, sendDestination, sendRecipient)
		},
	}
	sendCmd.Flags().StringVar(&sendUser, "user", "", "User ID (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "Amount to transfer (required)")
	sendCmd.Flags().StringVar(&sendCurrency, "currency", "USDC", "Currency code")
	sendCmd.Flags().StringVar(&sendSource, "from", "", "Source country code (required)")
	sendCmd.Flags().StringVar(&sendDestination, "to", "", "Destination country code (required)")
	sendCmd.Flags().StringVar(&sendRecipient, "recipient", "", "Recipient address or account")
	sendCmd.MarkFlagRequired("user")
	sendCmd.MarkFlagRequired("amount")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a transfer outcome",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transfers/" + args[0])
		},
	}

	stepsCmd := &cobra.Command{
		Use:   "steps <id>",
		Short: "Fetch the step results of a transfer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transfers/" + args[0] + "/steps")
		},
	}

	transferCmd.AddCommand(sendCmd, getCmd, stepsCmd)
	rootCmd.AddCommand(transferCmd)

	jurisdictionsCmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List supported jurisdictions",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/jurisdictions")
		},
	}
	rootCmd.AddCommand(jurisdictionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func sendTransfer(user, amount, currency, source, destination, recipient string) {
	payload := map[string]any{
		"user_id":             user,
		"amount":              amount,
		"currency":            currency,
		"source_country":      source,
		"destination_country": destination,
	}
	if recipient != "" {
		payload["recipient"] = recipient
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/transfers", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
