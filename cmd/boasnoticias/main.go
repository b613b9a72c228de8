package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Gabryew/boas-noticias/internal/aggregate"
	"github.com/Gabryew/boas-noticias/internal/classify"
	"github.com/Gabryew/boas-noticias/internal/config"
	"github.com/Gabryew/boas-noticias/internal/feed"
	"github.com/Gabryew/boas-noticias/internal/fetch"
	"github.com/Gabryew/boas-noticias/internal/news"
	"github.com/Gabryew/boas-noticias/internal/server"
	"github.com/Gabryew/boas-noticias/internal/vocab"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "boasnoticias",
	Short:   "Good-news feed aggregator",
	Long:    "boasnoticias collects news feeds, classifies each item's sentiment, and serves the good ones.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keywordsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("boasnoticias", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/boasnoticias/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds and the classification strategy.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vocabulary store and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		positive, err := store.Count(vocab.Positive)
		if err != nil {
			return fmt.Errorf("counting positive keywords: %w", err)
		}
		negative, err := store.Count(vocab.Negative)
		if err != nil {
			return fmt.Errorf("counting negative keywords: %w", err)
		}

		fmt.Printf("Configured feeds: %d\n", len(cfg.Sources.Feeds))
		for _, f := range cfg.Sources.Feeds {
			fmt.Printf("  %s (%s)\n", f.Name, f.URL)
		}
		fmt.Printf("\nClassifier strategy: %s (threshold %d)\n", cfg.Classifier.Strategy, cfg.Classifier.Threshold)
		fmt.Printf("Learning enabled: %v\n", cfg.Learning.Enabled)
		fmt.Println("\nVocabulary:")
		fmt.Printf("  Store: %s\n", store.Path())
		fmt.Printf("  Positive keywords: %d\n", positive)
		fmt.Printf("  Negative keywords: %d\n", negative)
		return nil
	},
}

// --- collect command ---

var (
	collectGoodOnly bool
	collectOutput   string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one aggregation pass and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		agg, learner := buildAggregator(store)
		if learner != nil {
			defer learner.Close()
		}

		items, err := agg.Run(context.Background(), feedSources())
		if err != nil {
			return err
		}

		if collectGoodOnly {
			good := items[:0]
			for _, item := range items {
				if item.Classification == news.Good {
					good = append(good, item)
				}
			}
			items = good
		}

		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding items: %w", err)
		}

		if collectOutput != "" {
			if err := os.WriteFile(collectOutput, data, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("Wrote %d items to %s\n", len(items), collectOutput)
			return nil
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	collectCmd.Flags().BoolVar(&collectGoodOnly, "good-only", false, "Keep only items classified as good")
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "Write JSON to file instead of stdout")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		agg, learner := buildAggregator(store)
		if learner != nil {
			defer learner.Close()
		}

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(agg, feedSources(), cfg.Server.PageSize, cfg.SnapshotTTL())
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return srv.ListenAndServe(port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

// --- keywords command ---

var keywordNegative bool

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage the classification vocabulary",
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vocabulary keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		v, err := store.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Positive keywords (%d):\n", len(v.Positive))
		for _, w := range v.Positive {
			fmt.Printf("  %s\n", w)
		}
		fmt.Printf("\nNegative keywords (%d):\n", len(v.Negative))
		for _, w := range v.Negative {
			fmt.Printf("  %s\n", w)
		}
		return nil
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add [word]...",
	Short: "Add keywords to the vocabulary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		polarity := vocab.Positive
		if keywordNegative {
			polarity = vocab.Negative
		}

		added, err := store.AddWords(polarity, args)
		if err != nil {
			return err
		}
		fmt.Printf("Added %d %s keyword(s)\n", added, polarity)
		return nil
	},
}

func init() {
	keywordsAddCmd.Flags().BoolVarP(&keywordNegative, "negative", "n", false, "Add to the negative set")
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
}

// --- helpers ---

func openStore() (*vocab.SQLiteStore, error) {
	store, err := vocab.Open(cfg.VocabularyPath())
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary store: %w", err)
	}
	return store, nil
}

func feedSources() []feed.Source {
	sources := make([]feed.Source, len(cfg.Sources.Feeds))
	for i, f := range cfg.Sources.Feeds {
		sources[i] = feed.Source{URL: f.URL, Name: f.Name}
	}
	return sources
}

// buildAggregator wires the pipeline from config. The returned learner
// is nil when learning is disabled.
func buildAggregator(store vocab.Store) (*aggregate.Aggregator, *classify.Learner) {
	classifier := classify.New(
		cfg.Classifier.Strategy,
		cfg.Classifier.Threshold,
		store,
		cfg.Classifier.Remote.URL,
		cfg.Classifier.Remote.APIKeyEnv,
	)

	var learner *classify.Learner
	if cfg.Learning.Enabled {
		learner = classify.NewLearner(store, cfg.Learning.MinWordLength, cfg.Learning.MaxWords)
	}

	var content aggregate.ContentFetcher
	if cfg.Fetch.EnrichContent {
		content = fetch.NewContentFetcher(cfg.FeedTimeout())
	}

	return aggregate.New(aggregate.Config{
		Feeds:         feed.NewClient(cfg.FeedTimeout()),
		Classifier:    classifier,
		Cache:         classify.NewCache(cfg.Cache.MaxEntries),
		Learner:       learner,
		Content:       content,
		MaxConcurrent: cfg.Aggregate.MaxConcurrentFetches,
	}), learner
}
