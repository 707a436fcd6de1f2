package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the relay status server to be ready",
	Long: `Wait for the relay status server to be ready by polling the status endpoint.

This command will repeatedly check the server status until it responds
successfully or the maximum number of retries is reached. The server is
ready once its user database answers.

Example:
  relayctl wait
  relayctl wait --address 127.0.0.1:5766 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		address, _ := cmd.Flags().GetString("address")
		retries, _ := cmd.Flags().GetInt("retries")

		if address == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
				os.Exit(1)
			}
			address = cfg.StatusAddress
		}

		if err := waitForServer(address, retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Relay status server is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().StringP("address", "a", "", "Status server address (default status_address)")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(address string, retries int, interval time.Duration) error {
	url := fmt.Sprintf("http://%s/", address)
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for the relay to be ready...")

	for i := 0; i < retries; i++ {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				fmt.Println()
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(interval)
	}

	fmt.Println()
	return fmt.Errorf("relay is not ready after %d attempts", retries)
}
