// Package extractor walks an article directory and produces the corpus artifacts.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"notecorpus/internal/config"
	"notecorpus/internal/formatter"
	"notecorpus/internal/logger"
	"notecorpus/internal/models"
	"notecorpus/internal/output"
	"notecorpus/internal/parser"
	"notecorpus/pkg/metadata"
)

// Input directory errors.
var (
	ErrInputDirMissing = errors.New("input directory does not exist")
	ErrNotADirectory   = errors.New("input path is not a directory")
)

// Result describes a completed run.
type Result struct {
	Files    []string
	Corpus   models.Corpus
	Articles metadata.Digest
	Titles   metadata.Digest
}

// Extractor turns a directory of Markdown articles into a JSON corpus and a title list.
type Extractor struct {
	cfg *config.Config
	log *logger.Logger
}

// New creates an extractor for the given configuration.
func New(cfg *config.Config, log *logger.Logger) *Extractor {
	return &Extractor{
		cfg: cfg,
		log: log.With("component", "extractor"),
	}
}

// Discover returns the paths of all matching files in the input directory,
// sorted by file name. Subdirectories are not descended into.
func (e *Extractor) Discover() ([]string, error) {
	dir := e.cfg.InputDir()

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	// os.ReadDir sorts entries by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string

	for _, entry := range entries {
		matched, matchErr := filepath.Match(e.cfg.Extractor.Input.Pattern, entry.Name())
		if matchErr != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", e.cfg.Extractor.Input.Pattern, matchErr)
		}

		if !matched {
			continue
		}

		if entry.IsDir() {
			e.log.Warn("skipping directory matching pattern", "dir", entry.Name())

			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// Parse reads and parses each file in order. The first read or decode
// failure aborts the whole run.
func (e *Extractor) Parse(ctx context.Context, files []string) (models.Corpus, error) {
	corpus := make(models.Corpus, 0, len(files))
	width := e.cfg.Extractor.Logging.TitleWidth

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		article, err := parser.ParseFile(filepath.Base(path), raw)
		if err != nil {
			return nil, err
		}

		e.log.Debug("parsed article",
			"file", article.Filename,
			"title", formatter.Truncate(article.Title, width),
			"tags", len(article.Tags),
			"body_bytes", len(article.Body),
		)

		corpus = append(corpus, article)
	}

	return corpus, nil
}

// Write serializes the corpus and writes both artifacts. Both payloads are
// encoded before either file is touched.
func (e *Extractor) Write(corpus models.Corpus) (metadata.Digest, metadata.Digest, error) {
	articlesData, err := output.EncodeCorpus(corpus, e.cfg.Extractor.Output.Indent)
	if err != nil {
		return metadata.Digest{}, metadata.Digest{}, err
	}

	titlesData := output.EncodeTitles(corpus.Titles())

	articles, err := output.WriteFile(e.cfg.ArticlesPath(), articlesData)
	if err != nil {
		return metadata.Digest{}, metadata.Digest{}, err
	}

	e.log.Debug("wrote artifact", "path", articles.Path, "sha256", articles.Hash, "unchanged", articles.Unchanged)

	titles, err := output.WriteFile(e.cfg.TitlesPath(), titlesData)
	if err != nil {
		return articles, metadata.Digest{}, err
	}

	e.log.Debug("wrote artifact", "path", titles.Path, "sha256", titles.Hash, "unchanged", titles.Unchanged)

	return articles, titles, nil
}

// Run discovers, parses and writes in one pass.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	files, err := e.Discover()
	if err != nil {
		return nil, err
	}

	e.log.Info("discovered articles", "dir", e.cfg.InputDir(), "count", len(files))

	corpus, err := e.Parse(ctx, files)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	articles, titles, err := e.Write(corpus)
	if err != nil {
		return nil, err
	}

	e.log.Log(ctx, slog.LevelInfo, "extraction complete", "articles", len(corpus), "tags", corpus.TagCount())

	return &Result{
		Files:    files,
		Corpus:   corpus,
		Articles: articles,
		Titles:   titles,
	}, nil
}

// SummaryRows returns one table row per article for terminal display.
func SummaryRows(corpus models.Corpus, titleWidth int) [][]string {
	rows := make([][]string, 0, len(corpus))
	for i, a := range corpus {
		tags := make([]string, 0, len(a.Tags))
		for _, tag := range a.Tags {
			tags = append(tags, parser.TagMarker+tag)
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Filename,
			formatter.Truncate(a.Title, titleWidth),
			strings.Join(tags, " "),
		})
	}

	return rows
}
