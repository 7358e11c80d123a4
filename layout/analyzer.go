package layout

import (
	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/text"
)

// AnalyzerConfig holds configuration for all detection stages
type AnalyzerConfig struct {
	LineConfig  LineConfig
	BlockConfig BlockConfig
}

// DefaultAnalyzerConfig returns sensible default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		LineConfig:  DefaultLineConfig(),
		BlockConfig: DefaultBlockConfig(),
	}
}

// Analyzer turns the text fragments of a page into text blocks
type Analyzer struct {
	config AnalyzerConfig
	lines  *LineDetector
	blocks *BlockDetector
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config: config,
		lines:  NewLineDetectorWithConfig(config.LineConfig),
		blocks: NewBlockDetectorWithConfig(config.BlockConfig),
	}
}

// Analyze groups fragments into lines and lines into blocks
func (a *Analyzer) Analyze(fragments []text.TextFragment) []Block {
	return a.blocks.Detect(a.lines.Detect(fragments))
}

// PageBlocks analyzes fragments and converts the blocks to the page model,
// mapping coordinates through m
func (a *Analyzer) PageBlocks(fragments []text.TextFragment, m model.Matrix) []model.Block {
	blocks := a.Analyze(fragments)
	out := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Model(m, a.config.LineConfig))
	}
	return out
}
