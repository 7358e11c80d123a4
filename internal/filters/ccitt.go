package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// ccittDecode expands Group 3 or Group 4 fax data to one bit per pixel.
// K below zero selects Group 4. Without /Rows the height is taken from
// the data. PDF paints 0 as black unless /BlackIs1 is set, which is the
// inverse of the decoder's default.
func ccittDecode(data []byte, params Params) ([]byte, error) {
	sf := ccitt.Group3
	if params.Int("K", 0) < 0 {
		sf = ccitt.Group4
	}

	rows := params.Int("Rows", 0)
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}

	opts := &ccitt.Options{Invert: params.Int("BlackIs1", 0) == 1}
	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, params.Int("Columns", 1728), rows, opts)
	return io.ReadAll(r)
}
