package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"checker/internal/checker"
	"checker/internal/config"
	"checker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// readCredentials reads one credential per line, skipping blank lines. Blank
// and malformed entries are still reported by the checker itself; this only
// drops lines that carry nothing at all.
func readCredentials(r io.Reader) ([]string, error) {
	var credentials []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			credentials = append(credentials, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return credentials, nil
}

// checkCommand runs a single batch from a file (or stdin) and prints the
// result as JSON on stdout.
func checkCommand(cfg *config.Config) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Checks a batch of credentials and prints the results as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			input := os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					logger.Fatal(ctx, "could not open input file", zap.Error(err))
				}
				defer f.Close()
				input = f
			}

			credentials, err := readCredentials(input)
			if err != nil {
				logger.Fatal(ctx, "could not read credentials", zap.Error(err))
			}

			result, err := getChecker(cfg, checker.NopStats{}).Run(ctx, credentials)
			if err != nil {
				logger.Fatal(ctx, "could not run batch", zap.Error(err))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				logger.Fatal(ctx, "could not encode result", zap.Error(err))
			}
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "File with one credential per line (defaults to stdin)")

	return cmd
}
