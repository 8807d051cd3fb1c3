package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dtex/internal/browser"
	"dtex/internal/extractor"
	"dtex/internal/formatter"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	outputFormat string
	outputFile   string
	timeout      time.Duration
	darkMode     bool
	mobile       bool
	slow         bool
	showUI       bool
	noSandbox    bool
	proxyURL     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:     "dtex [URL]",
		Short:   "Extract design tokens from live websites",
		Version: version,
		Long: `dtex drives a headless browser against a live website and extracts its
visual design tokens: color palette, typography scale, spacing values,
borders, shadows and logo. Raw DOM/CSS observations are confidence-scored,
deduplicated and ranked before output.`,
		Example: `  # Extract tokens and print a text summary
  dtex https://example.com

  # Full structured output, written to a file
  dtex -f json -o tokens.json https://example.com

  # Dark mode, mobile viewport, slow-loading site
  dtex --dark --mobile --slow https://example.com

  # Watch the browser work (also the fallback when bot defenses block headless)
  dtex --showui https://example.com`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				os.Exit(0)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, markdown, json, csv)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Navigation timeout per attempt")
	rootCmd.Flags().BoolVar(&darkMode, "dark", false, "Emulate prefers-color-scheme: dark before the page loads")
	rootCmd.Flags().BoolVar(&mobile, "mobile", false, "Emulate a mobile viewport before the page loads")
	rootCmd.Flags().BoolVar(&slow, "slow", false, "Triple all wait/timeout constants for slow-loading sites")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().BoolVar(&noSandbox, "no-sandbox", false, "Disable the browser sandbox (for containerized environments)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("DTEX_PROXY"), "Proxy URL (e.g. http://127.0.0.1:7890), defaults to DTEX_PROXY env var")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	target := normalizeURL(args[0])

	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && outputFormat == "text" {
		if inferred := inferFormatFromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}

	if err := validateFlags(); err != nil {
		return err
	}

	launch := func(cfg browser.Config) (extractor.Session, error) {
		return browser.NewSession(cfg)
	}

	ext := extractor.New(launch, extractor.Options{
		Timeout:   timeout,
		DarkMode:  darkMode,
		Mobile:    mobile,
		Slow:      slow,
		ShowUI:    showUI,
		NoSandbox: noSandbox,
		ProxyURL:  proxyURL,
	})

	result, err := ext.Extract(context.Background(), target)
	if err != nil {
		return fmt.Errorf("failed to extract tokens: %w", err)
	}

	outputContent, err := formatter.Format(result, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", outputFile)
	} else {
		fmt.Println(outputContent)
	}

	return nil
}

func validateFlags() error {
	validFormats := map[string]bool{
		"text":     true,
		"markdown": true,
		"json":     true,
		"csv":      true,
	}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// inferFormatFromExtension infers output format from file extension
func inferFormatFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".txt":
		return "text"
	default:
		return ""
	}
}

// normalizeURL normalizes URL, adds https:// if no protocol prefix
func normalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL
	}
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}
