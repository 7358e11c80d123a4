// Package font reads PDF font resources far enough to extract text from
// them: which bytes form a character code, how wide each code is and what
// Unicode text it stands for.
//
// [Parse] accepts simple fonts (Type1, MMType1, TrueType, Type3) and
// composite Type0 fonts with their descendant CIDFont. Widths come from
// /Widths or /W when present, then from an embedded TrueType program,
// then from the Standard 14 metrics.
//
// Text is decoded with the font's /ToUnicode [CMap] when it has one and
// with its encoding otherwise. Results are NFC normalized.
package font
