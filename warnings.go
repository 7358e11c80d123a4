package bionic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotPDF is returned for input that does not start with the PDF
// signature. No parsing is attempted.
var ErrNotPDF = errors.New("invalid PDF file format")

// ConvertError reports a failure that aborted a conversion. No output is
// produced when a ConvertError is returned.
type ConvertError struct {
	Op       string // "read", "validate", "open", "fonts", "page", "render", "save"
	Filename string
	Page     int // 1-based, 0 when not page specific
	Err      error
}

func (e *ConvertError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Filename != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Filename)
	}
	if e.Page > 0 {
		fmt.Fprintf(&sb, " page %d", e.Page)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal issue met during a conversion: an element that
// could not be drawn and was skipped.
type Warning struct {
	Page     int    // 1-based
	Block    int    // index of the block on the page
	Category string // element category
	Message  string
}

// String formats the warning for display
func (w Warning) String() string {
	return fmt.Sprintf("page %d, block %d (%s): %s", w.Page, w.Block, w.Category, w.Message)
}

// FormatWarnings joins warnings into a human-readable string, one per
// line. It returns an empty string for no warnings.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
