package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagelens/backend/analyzer"
	"github.com/pagelens/backend/fetch"
	"github.com/pagelens/backend/htmldoc"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		file    string
		baseURL string
		compact bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Audit a single page and print the report as JSON",
		Long: `Audit a single page and print the report as JSON.

With a URL argument the page is fetched over HTTP. With --file (or "-"
for stdin) a local HTML document is analyzed instead; relative links
are resolved against --base when given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				htmlText string
				pageURL  string
				fetched  = time.Now().UTC()
			)

			switch {
			case file != "":
				raw, err := readInput(file)
				if err != nil {
					return err
				}
				htmlText = raw
				pageURL = baseURL
			case len(args) == 1:
				page, err := fetch.New().Fetch(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("fetching %s: %w", args[0], err)
				}
				htmlText = string(page.HTML)
				pageURL = page.FinalURL
				fetched = page.FetchedAt
			default:
				return fmt.Errorf("either a URL argument or --file is required")
			}

			view, err := htmldoc.ParseString(htmlText, pageURL)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			result := analyzer.Analyze(view, pageURL, fetched)

			if summary {
				printSummary(cmd.OutOrStdout(), result)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `local HTML file to analyze ("-" for stdin)`)
	cmd.Flags().StringVar(&baseURL, "base", "", "base URL for resolving links in --file input")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON instead of indented")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a short text summary instead of JSON")

	return cmd
}

func printSummary(w io.Writer, r *analyzer.AnalysisResult) {
	fmt.Fprintf(w, "Score:       %d/100 (%s)\n", r.Score, r.Rating.Label)
	fmt.Fprintf(w, "Readability: %.1f (%s)\n", r.Readability.FleschScore, r.Readability.GradeLevel)
	fmt.Fprintf(w, "Words:       %d\n", r.Statistics.TotalWords)
	fmt.Fprintf(w, "Headings:    %d (H1: %d)\n", len(r.Headings), r.Statistics.H1Count)
	fmt.Fprintf(w, "Images:      %d (%d without alt)\n", r.Statistics.TotalImages, r.Statistics.ImagesWithoutAlt)
	fmt.Fprintf(w, "Links:       %d internal, %d external, %d anchors\n",
		r.Statistics.InternalLinks, r.Statistics.ExternalLinks, r.Statistics.AnchorLinks)
	fmt.Fprintf(w, "Schema:      %d block(s)\n", r.Statistics.SchemaCount)
	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "Issues:      none")
		return
	}
	fmt.Fprintf(w, "Issues:      %d\n", len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  [%s] %s\n", issue.Severity, issue.Message)
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
