// Package contentstream splits PDF content streams into operations.
//
//	ops, err := contentstream.NewParser(data).Parse()
//	for _, op := range ops {
//	    fmt.Println(op.Operator, op.Operands)
//	}
//
// Operands are core objects: numbers, strings with escapes resolved,
// names with #xx escapes resolved, arrays and dictionaries. Inline images
// (BI ... ID ... EI) come back as one "BI" operation so the data bytes
// never reach the tokenizer.
package contentstream
