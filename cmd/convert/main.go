// Command convert is the one-shot CLI converter: it reads a long-format
// result export and writes the wide-format tabulation workbook in a single
// run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/amjed-ali-k/sbte-refactor/internal/config"
	"github.com/amjed-ali-k/sbte-refactor/internal/core"
	"github.com/amjed-ali-k/sbte-refactor/internal/logging"
)

func main() {
	in := flag.String("in", "", "path to the result export CSV (required)")
	out := flag.String("out", "", "output workbook path (default: CONVERT_OUTPUT)")
	strict := flag.Bool("strict", false, "reject malformed cells and inconsistent student rows")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: convert -in results.csv [-out result.xlsx] [-strict]")
		os.Exit(2)
	}

	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *strict {
		cfg.Convert.Strict = true
	}
	if *out == "" {
		*out = cfg.Convert.Output
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	f, err := os.Open(*in)
	if err != nil {
		slog.Error("cannot open input", "path", *in, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	service := core.NewService(cfg)
	res, workbook, err := service.Convert(context.Background(), f)
	if err != nil {
		msg := core.MapError(err)
		slog.Error("conversion failed", "error", err, "code", msg.Code)
		fmt.Fprintf(os.Stderr, "%s (%s)\n%s\n", msg.Message, msg.Code, msg.Action)
		os.Exit(1)
	}
	defer workbook.Close()

	if err := workbook.SaveAs(*out); err != nil {
		slog.Error("cannot write workbook", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %d students, %d courses (%d rows in %s)\n",
		*out, res.Students, res.Courses, res.Rows, res.Duration.Round(time.Millisecond))
}
