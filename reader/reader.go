package reader

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/font"
	"github.com/tsawler/bionic/internal/pdfconf"
	"github.com/tsawler/bionic/pages"
	"github.com/tsawler/bionic/resolver"
)

var versionPattern = regexp.MustCompile(`^%PDF-(\d+\.\d+)`)

// Metadata is the header version and the document information entries
// carried over to the converted file
type Metadata struct {
	Version  string
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// Reader reads a PDF held in memory. pdfcpu parses the file structure;
// the Reader converts objects into the core model as they are asked for.
// A Reader is not safe for concurrent use; each conversion opens its own.
type Reader struct {
	data     []byte
	ctx      *model.Context
	version  string
	objCache map[int]core.Object
	pageTree *pages.PageTree
	fonts    *fontCache
	inline   map[string]*core.Stream // inline images seen by Page
}

var _ pages.ObjectResolver = (*Reader)(nil)

// OpenBytes checks the header and reads the object structure of an
// in-memory PDF. Damaged cross-reference data is repaired by pdfcpu where
// possible.
func OpenBytes(data []byte) (*Reader, error) {
	version, err := parseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	ctx, err := readContext(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read document structure: %w", err)
	}

	r := &Reader{
		data:     data,
		ctx:      ctx,
		version:  version,
		objCache: make(map[int]core.Object),
		inline:   make(map[string]*core.Stream),
	}
	r.fonts = newFontCache(r)
	return r, nil
}

// Open reads a PDF file from disk and returns a Reader
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return OpenBytes(data)
}

// readContext runs pdfcpu over data. pdfcpu panics on a few malformed
// inputs; those come back as errors.
func readContext(data []byte) (ctx *model.Context, err error) {
	defer func() {
		if p := recover(); p != nil {
			ctx, err = nil, fmt.Errorf("malformed document: %v", p)
		}
	}()
	return api.ReadContext(bytes.NewReader(data), pdfconf.Configuration())
}

// parseHeader returns the version of a "%PDF-M.m" header
func parseHeader(data []byte) (string, error) {
	if len(data) < 8 {
		return "", fmt.Errorf("header too short: %d bytes", len(data))
	}
	m := versionPattern.FindSubmatch(data[:min(len(data), 16)])
	if m == nil {
		return "", fmt.Errorf("invalid PDF header: %q", data[:8])
	}
	return string(m[1]), nil
}

// Close drops the parsed document and every cached object.
func (r *Reader) Close() error {
	r.ctx = nil
	r.data = nil
	r.objCache = nil
	r.pageTree = nil
	r.fonts = nil
	r.inline = nil
	return nil
}

// Metadata returns the header version and the string entries of the
// document information dictionary. A missing or damaged dictionary leaves
// the entries empty.
func (r *Reader) Metadata() Metadata {
	meta := Metadata{Version: r.version}
	if r.ctx == nil || r.ctx.Info == nil {
		return meta
	}

	obj, err := resolver.New(r).Deep(convert(*r.ctx.Info))
	info, ok := obj.(core.Dict)
	if err != nil || !ok {
		return meta
	}
	for key, dst := range map[string]*string{
		"Title":    &meta.Title,
		"Author":   &meta.Author,
		"Subject":  &meta.Subject,
		"Keywords": &meta.Keywords,
		"Creator":  &meta.Creator,
	} {
		if v, ok := info.GetString(key); ok {
			*dst = font.DecodeTextString([]byte(v))
		}
	}
	return meta
}

// GetObject returns object objNum in the core model. Objects stored in
// object streams are found the same way as the others.
func (r *Reader) GetObject(objNum int) (core.Object, error) {
	if r.ctx == nil {
		return nil, fmt.Errorf("reader is closed")
	}
	if obj, ok := r.objCache[objNum]; ok {
		return obj, nil
	}

	entry, ok := r.ctx.Table[objNum]
	if !ok || entry == nil {
		return nil, fmt.Errorf("object %d not found in xref table", objNum)
	}
	if entry.Free {
		return nil, fmt.Errorf("object %d is not in use", objNum)
	}

	obj := convert(entry.Object)
	if stream, ok := obj.(*core.Stream); ok && stream.Data == nil {
		stream.Data = r.streamData(entry.Object)
	}
	r.objCache[objNum] = obj
	return obj, nil
}

// streamData cuts the payload of a stream pdfcpu left unloaded straight
// from the file.
func (r *Reader) streamData(o types.Object) []byte {
	sd, ok := o.(types.StreamDict)
	if !ok || sd.StreamLength == nil {
		return nil
	}
	start, end := sd.StreamOffset, sd.StreamOffset+*sd.StreamLength
	if start <= 0 || end > int64(len(r.data)) || end < start {
		return nil
	}
	return r.data[start:end]
}

// ResolveReference resolves an indirect reference
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// Resolve follows obj if it is an indirect reference, chains included,
// otherwise returns it as-is
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	return resolver.New(r).Shallow(obj)
}

// catalog returns the document catalog
func (r *Reader) catalog() (core.Dict, error) {
	if r.ctx.Root == nil {
		return nil, fmt.Errorf("trailer missing /Root reference")
	}
	obj, err := r.Resolve(convert(*r.ctx.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog: %w", err)
	}
	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is not a dictionary: %T", obj)
	}
	return catalog, nil
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() (int, error) {
	if err := r.ensurePageTree(); err != nil {
		return 0, err
	}
	return r.pageTree.Count()
}

// GetPage returns the page object at the given index (0-based)
func (r *Reader) GetPage(index int) (*pages.Page, error) {
	if err := r.ensurePageTree(); err != nil {
		return nil, err
	}
	return r.pageTree.GetPage(index)
}

func (r *Reader) ensurePageTree() error {
	if r.pageTree != nil {
		return nil
	}

	if r.ctx == nil {
		return fmt.Errorf("reader is closed")
	}
	catalog, err := r.catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	pagesDict, err := pages.NewCatalog(catalog, r).Pages()
	if err != nil {
		return err
	}

	r.pageTree = pages.NewPageTree(pagesDict, r)
	return nil
}
