package bionic_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tsawler/bionic"
	"github.com/tsawler/bionic/transform"
)

// These examples show typical use. Those reading files are compiled but not
// run.

func Example_convertFile() {
	out, warnings, err := bionic.Open("document.pdf").Convert(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(bionic.OutputName("document.pdf"), out, 0o644); err != nil {
		log.Fatal(err)
	}

	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
}

func Example_convertWithOptions() {
	data, err := os.ReadFile("upload.pdf")
	if err != nil {
		log.Fatal(err)
	}

	out, warnings, err := bionic.FromBytes(data).
		Filename("upload.pdf").
		Logger(slog.Default()). // Structured logs of each page
		HeaderFooterMargin(54). // Narrower header and footer bands
		Validate().             // Check the output with pdfcpu
		Convert(context.Background())
	_ = out
	_ = warnings
	_ = err
}

func Example_inspect() {
	pages, err := bionic.Open("document.pdf").Inspect(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range pages {
		fmt.Printf("page %d: %d blocks, %v\n", p.Number, p.Blocks, p.Counts)
	}
}

func ExampleOutputName() {
	fmt.Println(bionic.OutputName("reports/q3.pdf"))
	// Output: converted_q3.pdf
}

func ExampleFormatWarnings() {
	fmt.Println(bionic.FormatWarnings([]bionic.Warning{
		{Page: 2, Block: 5, Category: "image", Message: "unsupported filter JPXDecode"},
	}))
	// Output: page 2, block 5 (image): unsupported filter JPXDecode
}

func Example_splitWord() {
	bold, rest := transform.SplitWord("reading")
	fmt.Printf("%s|%s\n", bold, rest)
	// Output: rea|ding
}
