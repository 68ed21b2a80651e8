// Command extract-batch walks a directory of receipt files, extracts each
// one, and prints the keyed multi-file envelope. Results can additionally be
// written to an XLSX workbook.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/receipt-extractor/internal/batch"
	"github.com/joseph-ayodele/receipt-extractor/internal/common"
	"github.com/joseph-ayodele/receipt-extractor/internal/export"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
)

func main() {
	var (
		workers    = flag.Int("workers", 4, "concurrent extraction workers")
		timeout    = flag.Duration("timeout", 3*time.Minute, "per-file extraction timeout")
		skipHidden = flag.Bool("skip-hidden", true, "skip dotfiles and dot-directories")
		xlsxPath   = flag.String("xlsx", "", "also write results to this XLSX workbook")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <directory>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	root := flag.Arg(0)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(pipeline.FromAppConfig(cfg, logger), logger)
	runner.Workers = *workers
	runner.Timeout = *timeout

	results, stats, err := runner.ProcessDirectory(ctx, root, *skipHidden)
	if err != nil {
		logger.Error("directory walk failed", "root", root, "error", err)
		os.Exit(1)
	}

	env := batch.BuildEnvelope(results)
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		logger.Error("encode envelope", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *xlsxPath != "" {
		if err := export.NewExporter(logger).WriteFile(env.Data, *xlsxPath); err != nil {
			logger.Error("xlsx export failed", "path", *xlsxPath, "error", err)
			os.Exit(1)
		}
	}

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
