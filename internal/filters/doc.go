// Package filters decodes the data of PDF streams.
//
// The general purpose codecs (FlateDecode, LZWDecode, ASCIIHexDecode,
// ASCII85Decode and RunLengthDecode) run through pdfcpu's filter package,
// predictors included. CCITTFaxDecode is handled here with
// golang.org/x/image/ccitt. DCTDecode and JPXDecode data is returned as-is
// for the image writer.
//
//	out, err := filters.Decode("FlateDecode", data, filters.Params{"Predictor": 12, "Columns": 4})
//
// Abbreviated names from inline images (Fl, AHx, A85, LZW, RL, CCF, DCT)
// are accepted everywhere a filter name is.
package filters
