// Package main provides the article extractor command-line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"notecorpus/internal/config"
	"notecorpus/internal/extractor"
	"notecorpus/internal/formatter"
	"notecorpus/internal/logger"
	"notecorpus/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	rootDir := flag.String("root", "", "Project root for relative paths (default: parent of the executable's directory)")
	logLevel := flag.String("log-level", "", "Override logging level: debug, info, warn, error")
	summary := flag.Bool("summary", false, "Print a per-article table after extraction")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this YAML file and exit")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	log := logger.NewLogger("info")

	root := *rootDir
	if root == "" {
		var err error

		root, err = config.DefaultRoot()
		if err != nil {
			log.Error("failed to resolve project root", "error", err)
			os.Exit(1)
		}
	}

	cfg := config.Default(root)

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile, root)
		if err != nil {
			log.Error("failed to load config", "path", *configFile, "error", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *logLevel != "" {
		if _, ok := logger.ParseLevel(*logLevel); !ok {
			log.Error("invalid flags", "error", config.ErrInvalidLogLevel)
			os.Exit(1)
		}
	}

	log = logger.New(os.Stderr, cfg.Extractor.Logging.Level, cfg.Extractor.Logging.Format)

	if *logLevel != "" {
		cfg.Extractor.Logging.Level = *logLevel
		log.SetLevel(*logLevel)
	}

	log.Debug("configuration", "config", cfg.String())

	if *writeConfig != "" {
		if err := cfg.SaveConfig(*writeConfig); err != nil {
			log.Error("failed to write config", "path", *writeConfig, "error", err)
			os.Exit(1)
		}

		fmt.Printf("⚙️  Configuration written to: %s\n", *writeConfig)

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	result, err := extractor.New(cfg, log).Run(ctx)

	stop()

	if err != nil {
		log.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("📂 Found %d .md files\n", len(result.Files))
	fmt.Printf("✅ Articles written to: %s %s\n", result.Articles.Path, artifactNote(result.Articles))
	fmt.Printf("✅ Titles written to: %s %s\n", result.Titles.Path, artifactNote(result.Titles))

	if *summary && len(result.Corpus) > 0 {
		fmt.Println()

		rows := extractor.SummaryRows(result.Corpus, cfg.Extractor.Logging.TitleWidth)
		for _, line := range formatter.RenderTable([]string{"#", "File", "Title", "Tags"}, rows) {
			fmt.Println(line)
		}
	}
}

func artifactNote(d metadata.Digest) string {
	if d.Unchanged {
		return fmt.Sprintf("(%d bytes, unchanged)", d.Size)
	}

	return fmt.Sprintf("(%d bytes)", d.Size)
}

func printUsage() {
	fmt.Println("Usage: ./bin/extractor [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Defaults:")
	fmt.Printf("  input:    <root>/%s/%s\n", config.DefaultInputDir, config.DefaultPattern)
	fmt.Printf("  articles: <root>/%s/%s\n", config.DefaultOutputDir, config.DefaultArticlesFile)
	fmt.Printf("  titles:   <root>/%s/%s\n", config.DefaultOutputDir, config.DefaultTitlesFile)
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/extractor")
	fmt.Println("  ./bin/extractor -root . -summary")
	fmt.Println("  ./bin/extractor -config configs/extractor.yaml -log-level debug")
	fmt.Println("  ./bin/extractor -write-config configs/extractor.yaml")
}
