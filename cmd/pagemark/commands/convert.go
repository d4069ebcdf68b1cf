package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagemark/pagemark/internal/config"
	"github.com/pagemark/pagemark/internal/logger"
	"github.com/pagemark/pagemark/internal/output"
	"github.com/pagemark/pagemark/pkg/convert"
	"github.com/pagemark/pagemark/pkg/fetcher"
)

var convertCmd = &cobra.Command{
	Use:   "convert [url...]",
	Short: "Convert HTML to Markdown",
	Long: `Convert one or more web pages or a local HTML file to Markdown.

Input comes from URLs, a file (-f), or stdin when neither is given.

Examples:
  pagemark convert https://example.com/article
  pagemark convert -f page.html --links --metadata
  pagemark convert --format jsonl https://a.example https://b.example
  cat page.html | pagemark convert`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()

	// Input
	flags.StringP("file", "f", "", "read HTML from file instead of URL")

	// Conversion options
	flags.Bool("links", false, "preserve links as [text](href)")
	flags.Bool("images", false, "preserve images as ![alt](src)")
	flags.Bool("metadata", false, "prepend a front matter block")
	flags.Int("max-depth", convert.DefaultMaxDepth, "maximum tree depth")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "custom user agent")
	flags.String("wait-for", "", "CSS selector to wait for (dynamic mode)")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "markdown", "output format: markdown, json, jsonl, yaml")
	flags.Bool("stats", false, "log conversion stats to stderr")

	for _, name := range []string{
		"links", "images", "metadata", "max-depth",
		"fetch-mode", "timeout", "user-agent", "format", "stats",
	} {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg, err := config.Load()
	if err != nil {
		logError("%v", err)
		return err
	}

	filePath, _ := cmd.Flags().GetString("file")
	if filePath == "" && len(args) == 0 {
		// No URL, no file: read stdin
		return convertStdin(cmd, cfg)
	}
	if filePath != "" {
		return convertFile(cmd, cfg, filePath)
	}
	return convertURLs(cmd, cfg, args)
}

func convertStdin(cmd *cobra.Command, cfg *config.Config) error {
	html, err := io.ReadAll(os.Stdin)
	if err != nil {
		logError("reading stdin: %v", err)
		return err
	}

	doc := &output.Document{Source: "stdin"}
	return writeDocuments(cmd, cfg, func(conv *convert.Converter, emit func(*output.Document) error) error {
		result := conv.ConvertStringWithStats(string(html))
		if result.Error != nil {
			return result.Error
		}
		doc.Markdown = result.Markdown
		fillDocument(doc, cfg, result)
		return emit(doc)
	})
}

func convertFile(cmd *cobra.Command, cfg *config.Config, path string) error {
	html, err := os.ReadFile(path)
	if err != nil {
		logError("reading %s: %v", path, err)
		return err
	}

	doc := &output.Document{Source: path}
	return writeDocuments(cmd, cfg, func(conv *convert.Converter, emit func(*output.Document) error) error {
		result := conv.ConvertStringWithStats(string(html))
		if result.Error != nil {
			return result.Error
		}
		doc.Markdown = result.Markdown
		fillDocument(doc, cfg, result)
		return emit(doc)
	})
}

func convertURLs(cmd *cobra.Command, cfg *config.Config, urls []string) error {
	f, err := newFetcher(cfg)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer f.Close()

	waitFor, _ := cmd.Flags().GetString("wait-for")
	opts := fetcher.Options{
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.Timeout,
		WaitForSelector: waitFor,
	}

	return writeDocuments(cmd, cfg, func(conv *convert.Converter, emit func(*output.Document) error) error {
		for _, url := range urls {
			logInfo("Fetching %s...", url)

			content, err := f.Fetch(context.Background(), url, opts)
			if err != nil {
				logError("fetching %s: %v", url, err)
				return err
			}

			result := conv.ConvertStringWithStats(content.HTML)
			if result.Error != nil {
				return fmt.Errorf("converting %s: %w", url, result.Error)
			}

			doc := &output.Document{
				URL:       url,
				FetchedAt: content.FetchedAt,
				Markdown:  result.Markdown,
			}
			fillDocument(doc, cfg, result)
			if err := emit(doc); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDocuments sets up the converter and output writer, runs the produce
// function, and flushes.
func writeDocuments(cmd *cobra.Command, cfg *config.Config, produce func(*convert.Converter, func(*output.Document) error) error) error {
	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			logError("creating %s: %v", path, err)
			return err
		}
		defer f.Close()
		out = f
	}

	writer, err := output.NewWriter(out, output.Format(cfg.Format))
	if err != nil {
		logError("%v", err)
		return err
	}

	conv := convert.New(cfg.ConvertConfig())
	if err := produce(conv, writer.Write); err != nil {
		logError("%v", err)
		return err
	}
	return writer.Close()
}

// fillDocument attaches stats and warnings for structured output formats.
func fillDocument(doc *output.Document, cfg *config.Config, result *convert.Result) {
	if cfg.Format != "markdown" {
		doc.Stats = result.Stats
		doc.Warnings = result.Warnings
	}
	if viper.GetBool("stats") {
		logInfo("%s", strings.TrimRight(result.Stats.String(), "\n"))
	}
}

func newFetcher(cfg *config.Config) (fetcher.Fetcher, error) {
	fcfg := fetcher.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}
	switch cfg.FetchMode {
	case "dynamic":
		return fetcher.NewDynamic(fcfg), nil
	case "static":
		return fetcher.NewStatic(fcfg), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", cfg.FetchMode)
	}
}
