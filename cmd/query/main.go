package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/form"
	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/BerylCAtieno/file-query-client/internal/predictor"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8000", "prediction service url")
	typeFlag := flag.String("type", "", "file type: pdf, txt or csv (default: from the file extension)")
	fileFlag := flag.String("file", "", "file to upload")
	queryFlag := flag.String("query", "", "question about the file")
	timeoutFlag := flag.Duration("timeout", 0, "request timeout, 0 for none")
	logFlag := flag.String("log-level", "error", "log level")

	flag.Parse()

	logger := utils.NewLoggerWithWriter(*logFlag, os.Stderr)

	client, err := predictor.New(*urlFlag, logger, predictor.WithTimeout(*timeoutFlag))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, client, logger, *typeFlag, *fileFlag, *queryFlag))
}

func run(ctx context.Context, p form.Predictor, logger *utils.Logger, fileType, path, query string) int {
	f := form.New(p, logger)

	t := models.FileType(fileType)
	if t == "" {
		t = models.FileTypeFromName(path)
	}
	f.SetFileType(t)

	if path != "" {
		file, err := readFile(path, t)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		f.SelectFile(file)
	}

	f.SetQuery(query)

	start := time.Now()
	if err := f.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrIncomplete) {
			fmt.Fprintln(os.Stderr, "usage: query -file <path> -query <text> [-type pdf|txt|csv]")
			return 2
		}
		fmt.Fprintln(os.Stderr, "request failed:", err)
		return 1
	}

	logger.Debug("Query answered", "duration", time.Since(start))

	fmt.Println(f.View().ResultOrHint)
	return 0
}

func readFile(path string, t models.FileType) (*models.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := t.ContentType()
	if guess := models.FileTypeFromName(path); guess != "" {
		contentType = guess.ContentType()
	}

	return &models.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Content:     data,
	}, nil
}
