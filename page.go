package bionic

import (
	"log/slog"

	"github.com/tsawler/bionic/classifier"
	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/render"
)

// pageCanvas is an output document positioned on its current page
type pageCanvas interface {
	render.Canvas
	AddPage(width, height float64) error
}

// pagePipeline classifies and renders pages. It holds no per-page state;
// every page gets a fresh accepted set.
type pagePipeline struct {
	classifier *classifier.Classifier
	renderer   *render.Renderer
	threshold  float64
	logger     *slog.Logger
}

func newPagePipeline(opts ConvertOptions, tables classifier.TableFinder, images render.ImageSource, logger *slog.Logger) *pagePipeline {
	c := classifier.New(tables)
	c.Margin = opts.headerFooterMargin
	return &pagePipeline{
		classifier: c,
		renderer:   render.New(images),
		threshold:  opts.overlapThreshold,
		logger:     logger,
	}
}

// classify returns the elements of page
func (p *pagePipeline) classify(page model.PageDict) []classifier.Element {
	acc := classifier.NewAccepted(p.threshold)
	return p.classifier.Classify(page, acc)
}

// convert adds an output page the size of page and draws its elements in
// order. Elements that fail to draw are skipped with a warning; only a
// failure to add the page is returned as an error.
func (p *pagePipeline) convert(out pageCanvas, page model.PageDict) ([]Warning, error) {
	if err := out.AddPage(page.Width, page.Height); err != nil {
		return nil, err
	}

	elements := p.classify(page)
	p.logger.Debug("classified page",
		"page", page.Number,
		"blocks", len(page.Blocks),
		"elements", len(elements))

	var warnings []Warning
	for _, el := range elements {
		if err := p.renderer.Render(out, el); err != nil {
			w := Warning{
				Page:     page.Number,
				Block:    el.Index,
				Category: el.Category.String(),
				Message:  err.Error(),
			}
			p.logger.Warn("skipped element",
				"page", w.Page,
				"block", w.Block,
				"category", w.Category,
				"error", err)
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}
