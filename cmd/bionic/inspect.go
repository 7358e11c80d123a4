package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/bionic"
	"github.com/tsawler/bionic/classifier"
)

// pageReport is the JSON form of a page summary
type pageReport struct {
	Page   int            `json:"page"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Blocks int            `json:"blocks"`
	Counts map[string]int `json:"counts"`
}

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Show how each page would be classified",
		Long: `Classify every page without drawing and print the number of text,
image, table, list, header/footer and other elements per page.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().BoolP("json", "j", false, "Print JSON instead of text")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	summaries, err := cfg.Apply(bionic.Open(args[0]).Logger(logger)).Inspect(cmd.Context())
	if err != nil {
		return err
	}

	reports := make([]pageReport, 0, len(summaries))
	for _, s := range summaries {
		counts := make(map[string]int, len(classifier.Categories))
		for _, c := range classifier.Categories {
			counts[c.String()] = s.Counts[c]
		}
		reports = append(reports, pageReport{
			Page:   s.Number,
			Width:  s.Width,
			Height: s.Height,
			Blocks: s.Blocks,
			Counts: counts,
		})
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		parts := make([]string, 0, len(classifier.Categories))
		for _, c := range classifier.Categories {
			parts = append(parts, fmt.Sprintf("%s=%d", c, r.Counts[c.String()]))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "page %d (%.0fx%.0f): %d blocks, %s\n",
			r.Page, r.Width, r.Height, r.Blocks, strings.Join(parts, " "))
	}
	return nil
}
