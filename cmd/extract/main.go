// Command extract runs the extraction pipeline on a single file and prints
// the structured result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/receipt-extractor/internal/common"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
	"github.com/joseph-ayodele/receipt-extractor/internal/schema"
)

func main() {
	var (
		pretty   = flag.Bool("pretty", true, "indent JSON output")
		validate = flag.Bool("validate", false, "check the result against the output schema before printing")
		quiet    = flag.Bool("quiet", false, "suppress progress logs")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.pdf|file.jpg|...>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	pipe := pipeline.FromAppConfig(cfg, logger)
	result, err := pipe.Run(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	var out []byte
	if *pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}

	if *validate {
		if err := schema.ValidateResult(out); err != nil {
			logger.Error("result failed schema validation", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println(string(out))
}
