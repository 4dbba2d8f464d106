package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avernik/doctrina/internal/fetch"
	"github.com/avernik/doctrina/internal/legis"
)

var (
	codeLocation string
	codeURI      string
	citeSelector string
)

// citeCmd represents the cite command
var citeCmd = &cobra.Command{
	Use:   "cite <source>",
	Short: "Resolve a citation against a published code",
	Long: `Cite loads the HTML publication of a legislative code, looks up the
cited provision, and prints the selected passage.

The code may be a local file or a URL; URLs are fetched with rate
limiting and robots.txt compliance. The selector quotes the passage,
or brackets it as "prefix|exact|suffix".

Example:
  doctrina cite /us/const/amendment-IV --code const.html --uri /us/const
  doctrina cite /us/const/amendment-IV --code const.html --uri /us/const \
      --selector "unreasonable searches and seizures"`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	rootCmd.AddCommand(citeCmd)

	citeCmd.Flags().StringVar(&codeLocation, "code", "", "HTML publication of the code (file path or URL)")
	citeCmd.Flags().StringVar(&codeURI, "uri", "", "citation path the code answers for, such as /us/const")
	citeCmd.Flags().StringVar(&citeSelector, "selector", "", "text quote selector narrowing the provision")
	_ = citeCmd.MarkFlagRequired("code")
	_ = citeCmd.MarkFlagRequired("uri")
}

func runCite(cmd *cobra.Command, args []string) error {
	source := args[0]
	cfg := DefaultConfig()

	var body []byte
	if strings.HasPrefix(codeLocation, "http://") || strings.HasPrefix(codeLocation, "https://") {
		client := fetch.NewClient(fetch.Options{
			UserAgent:         cfg.HTTP.UserAgent,
			Timeout:           cfg.HTTP.Timeout,
			MaxBytes:          cfg.HTTP.MaxBytes,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
			CacheTTL:          cfg.HTTP.CacheTTL,
			CacheDir:          cfg.HTTP.CacheDir,
			RespectRobots:     cfg.HTTP.RespectRobots,
		})
		fetched, err := client.Fetch(context.Background(), codeLocation)
		if err != nil {
			return fmt.Errorf("fetch code: %w", err)
		}
		body = fetched
	} else {
		read, err := os.ReadFile(codeLocation)
		if err != nil {
			return fmt.Errorf("read code: %w", err)
		}
		body = read
	}

	code, err := legis.ReadCode(codeURI, bytes.NewReader(body))
	if err != nil {
		return err
	}

	selector := legis.TextQuoteSelector{}
	if citeSelector != "" {
		selector, err = legis.ParseSelector(citeSelector)
		if err != nil {
			return err
		}
	}

	enactment, err := code.Select(source, selector)
	if err != nil {
		return err
	}
	fmt.Println(enactment)
	return nil
}
