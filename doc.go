// Package md2txt converts Markdown documents to plain text.
//
// # Quick Start
//
// Create a converter and convert Markdown:
//
//	conv, err := md2txt.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2txt.Input{
//	    Markdown: "# Hello\n\nSome **bold** text.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text) // Hello\n\nSome bold text.
//
// A Converter holds no per-call state and may be shared by goroutines.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Source decoding (BOM-aware, UTF-8 validated); HTML inputs are
//     sanitized and turned into Markdown first
//  2. Ordered text passes: code and comments are neutralized first,
//     then headers, emphasis, links, lists, tables, quotes and HTML tags,
//     and finally escapes and whitespace
//  3. Optional residual check: the output is parsed again with Goldmark
//     and any construct that is still Markdown is reported
//
// Every pass is bounded: no input makes a step run longer than linear time
// in the size of the document.
//
// # Removed Content
//
// Set Input.Record to keep every fragment a pass removed, grouped by category:
//
//	result, _ := conv.Convert(ctx, md2txt.Input{Markdown: doc, Record: true})
//	os.WriteFile("removed.txt", []byte(result.Removed.Render()), 0o644)
//
// NewReport summarizes a result (lengths, per-step statistics, removal
// counts, code block languages, warnings) as YAML.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2txt.NewConverter(
//	    md2txt.WithTimeout(10 * time.Second),
//	    md2txt.WithCodeBlockPlaceholder("[code omitted]"),
//	    md2txt.WithDisabledSteps("Tables (conservative)"),
//	    md2txt.WithResidualCheck(),
//	)
//
// StepNames lists the names accepted by WithDisabledSteps.
package md2txt
