package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send [file]",
	Short: "Replace the buffer of a running window",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readBuffer(cmd, args)
		if err != nil {
			return err
		}
		reply, err := sendBuffer(endpoint(), text)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), reply)
		return nil
	},
}

var typeCmd = &cobra.Command{
	Use:   "type [file]",
	Short: "Replay a buffer into a running window one keystroke at a time",
	Long:  "Sends every prefix of the buffer in turn, as an editor would on each keystroke.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runType,
}

func init() {
	typeCmd.Flags().Duration("delay", 50*time.Millisecond, "Delay between keystrokes")
	rootCmd.AddCommand(sendCmd, typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	text, err := readBuffer(cmd, args)
	if err != nil {
		return err
	}

	url := endpoint()
	var reply string
	for i := range text {
		if reply, err = sendBuffer(url, text[:i]); err != nil {
			return err
		}
		time.Sleep(delay)
	}
	if reply, err = sendBuffer(url, text); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), reply)
	return nil
}

// sendBuffer POSTs the full buffer and returns the server's diagnostics.
func sendBuffer(url, text string) (string, error) {
	resp, err := http.Post(url, "text/plain", strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("posting buffer to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}
