package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/bionic"
	"github.com/tsawler/bionic/internal/config"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file.pdf>...",
		Short: "Convert PDF files",
		Long: `Convert one or more PDF files. Each output is written to the output
directory as converted_<name>. Files are converted concurrently, up to
--jobs at a time; a failure does not stop the other files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringP("out", "o", "", "Output directory (default from config)")
	cmd.Flags().IntP("jobs", "j", 0, "Files converted at once (default from config)")
	cmd.Flags().Bool("validate", false, "Validate every output with pdfcpu")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutputDir = out
	}
	if jobs, _ := cmd.Flags().GetInt("jobs"); jobs > 0 {
		cfg.Jobs = jobs
	}
	if v, _ := cmd.Flags().GetBool("validate"); v {
		cfg.Converter.Validate = true
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var (
		mu     sync.Mutex
		failed int
	)
	report := func(format string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(cmd.OutOrStdout(), format, a...)
	}

	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for _, path := range args {
		g.Go(func() error {
			dest, warnings, err := convertFile(cmd, cfg, logger, path)
			if err != nil {
				logger.Error("conversion failed", "file", path, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return err
			}
			report("%s -> %s (%d warnings)\n", path, dest, len(warnings))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%d of %d files failed, first error: %w", failed, len(args), err)
	}
	return nil
}

// convertFile converts path and writes the result into the output
// directory, returning the destination path.
func convertFile(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, path string) (string, []bionic.Warning, error) {
	conv := cfg.Apply(bionic.Open(path).Logger(logger))
	out, warnings, err := conv.Convert(cmd.Context())
	if err != nil {
		return "", nil, err
	}
	for _, w := range warnings {
		logger.Warn("element skipped", "file", path, "warning", w.String())
	}

	dest := filepath.Join(cfg.OutputDir, bionic.OutputName(path))
	if err := os.WriteFile(dest, out, 0o644); err != nil { //nolint:gosec // output files are meant to be readable
		return "", nil, fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, warnings, nil
}
