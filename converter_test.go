package md2txt

// Notes:
// - Converter.Convert is tested end to end with the real pipeline; the
//   residual checker is replaced by mocks to cover its error and panic paths.
// - HTML conversion details are covered in internal/source; here we only check
//   that HTML inputs are routed through it.
// - Timeout expiry inside a step is not tested: steps are too fast to observe it.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2txt/internal/residual"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockChecker struct {
	report *residual.Report
	err    error
	panic  bool
	input  string
}

func (m *mockChecker) Check(_ context.Context, content string) (*residual.Report, error) {
	if m.panic {
		panic("checker exploded")
	}
	m.input = content
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// withChecker injects a residual checker (test only).
func withChecker(c residual.Checker) Option {
	return func(conv *Converter) {
		conv.cfg.check = true
		conv.checker = c
	}
}

func mustConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option handling
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "disabled steps", opts: []Option{WithDisabledSteps("Emphasis", "LISTS")}},
		{name: "unknown step", opts: []Option{WithDisabledSteps("Emoji")}, wantErr: ErrUnknownStep},
		{name: "residual check", opts: []Option{WithResidualCheck()}},
		{name: "placeholder", opts: []Option{WithCodeBlockPlaceholder("[code]")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}

// ---------------------------------------------------------------------------
// TestConvert - End-to-end conversion
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []Option
		input      Input
		wantText   string
		wantFormat string
	}{
		{
			name:       "markdown string",
			input:      Input{Markdown: "# Title\n\nSome **bold** text."},
			wantText:   "Title\n\nSome bold text.",
			wantFormat: "markdown",
		},
		{
			name:       "raw markdown bytes",
			input:      Input{Content: []byte("*hi* [there](https://x.y)"), Filename: "a.md"},
			wantText:   "hi there",
			wantFormat: "markdown",
		},
		{
			name:       "utf-8 bom is dropped",
			input:      Input{Content: []byte("\xEF\xBB\xBF# Título")},
			wantText:   "Título",
			wantFormat: "markdown",
		},
		{
			name:       "html file",
			input:      Input{Content: []byte("<h1>Hi</h1><p>A <strong>b</strong></p><script>x()</script>"), Filename: "page.html"},
			wantText:   "Hi\n\nA b",
			wantFormat: "html",
		},
		{
			name:       "custom placeholder",
			opts:       []Option{WithCodeBlockPlaceholder("[snip]")},
			input:      Input{Markdown: "```\ncode\n```\nafter"},
			wantText:   "[snip]\nafter",
			wantFormat: "markdown",
		},
		{
			name:       "disabled step keeps its syntax",
			opts:       []Option{WithDisabledSteps("Strong emphasis", "Emphasis")},
			input:      Input{Markdown: "a **b** c"},
			wantText:   "a **b** c",
			wantFormat: "markdown",
		},
		{
			name:       "empty input",
			input:      Input{},
			wantText:   "",
			wantFormat: "markdown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := mustConverter(t, tt.opts...)
			res, err := conv.Convert(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if res.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", res.Text, tt.wantText)
			}
			if res.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", res.Format, tt.wantFormat)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		input   Input
		wantErr error
	}{
		{
			name:    "both markdown and content",
			ctx:     context.Background(),
			input:   Input{Markdown: "a", Content: []byte("b")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "null byte in filename",
			ctx:     context.Background(),
			input:   Input{Content: []byte("a"), Filename: "a\x00.md"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid utf-8",
			ctx:     context.Background(),
			input:   Input{Content: []byte("caf\xe9")},
			wantErr: ErrDecode,
		},
		{
			name:    "canceled context",
			ctx:     canceled,
			input:   Input{Markdown: "# x"},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := mustConverter(t)
			res, err := conv.Convert(tt.ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Errorf("result = %+v, want nil on error", res)
			}
		})
	}
}

func TestConvert_Recording(t *testing.T) {
	t.Parallel()

	conv := mustConverter(t)
	doc := "# Head\n\nSee [docs](https://example.com) and `x`."

	t.Run("recorded", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(context.Background(), Input{Markdown: doc, Record: true})
		if err != nil {
			t.Fatal(err)
		}
		links := res.Removed.Items(CategoryLinks)
		if len(links) != 1 || links[0].Text != "[docs](https://example.com)" {
			t.Errorf("links = %+v", links)
		}
		if !strings.Contains(res.Removed.Render(), "HASH_HEADERS") {
			t.Errorf("Render() missing header section:\n%s", res.Removed.Render())
		}
	})

	t.Run("not recorded", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(context.Background(), Input{Markdown: doc})
		if err != nil {
			t.Fatal(err)
		}
		if res.Removed == nil {
			t.Fatal("Removed should never be nil")
		}
		if res.Removed.Len() != 0 {
			t.Errorf("Removed.Len() = %d, want 0", res.Removed.Len())
		}
	})
}

func TestConvert_Stats(t *testing.T) {
	t.Parallel()

	conv := mustConverter(t)
	res, err := conv.Convert(context.Background(), Input{Markdown: "# Título\n\nSome **bold** text with `code`."})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Stats) != len(StepNames()) {
		t.Fatalf("len(Stats) = %d, want %d", len(res.Stats), len(StepNames()))
	}
	if res.Stats[0].Before != res.OriginalLength {
		t.Errorf("first step Before = %d, want OriginalLength %d", res.Stats[0].Before, res.OriginalLength)
	}
	for i := 1; i < len(res.Stats); i++ {
		if res.Stats[i].Before != res.Stats[i-1].After {
			t.Errorf("step %d Before = %d, previous After = %d", i, res.Stats[i].Before, res.Stats[i-1].After)
		}
	}
	if last := res.Stats[len(res.Stats)-1]; last.After != res.FinalLength() {
		t.Errorf("last After = %d, FinalLength = %d", last.After, res.FinalLength())
	}
	if res.TotalReduction() != res.OriginalLength-res.FinalLength() {
		t.Errorf("TotalReduction() = %d", res.TotalReduction())
	}
}

func TestConvert_UnclosedFenceWarns(t *testing.T) {
	t.Parallel()

	conv := mustConverter(t)
	res, err := conv.Convert(context.Background(), Input{Markdown: "intro\n```go\nx := 1\n\nafter"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1", res.Warnings)
	}
	if !strings.Contains(res.Text, "after") {
		t.Errorf("text after the stray fence was lost: %q", res.Text)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_ResidualCheck - Leftover syntax reporting
// ---------------------------------------------------------------------------

func TestConvert_ResidualCheck(t *testing.T) {
	t.Parallel()

	t.Run("real scanner on clean output", func(t *testing.T) {
		t.Parallel()

		conv := mustConverter(t, WithResidualCheck())
		res, err := conv.Convert(context.Background(), Input{Markdown: "# A\n\n- one\n- two\n\n**b**"})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Checked {
			t.Error("Checked = false, want true")
		}
		if len(res.Residual) != 0 {
			t.Errorf("Residual = %v, want none", res.Residual)
		}
	})

	t.Run("real scanner finds disabled syntax", func(t *testing.T) {
		t.Parallel()

		conv := mustConverter(t, WithResidualCheck(), WithDisabledSteps("Links"))
		res, err := conv.Convert(context.Background(), Input{Markdown: "see [a](b)"})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Residual) != 1 || res.Residual[0].Kind != "link" {
			t.Errorf("Residual = %v, want one link", res.Residual)
		}
	})

	t.Run("checker receives output text", func(t *testing.T) {
		t.Parallel()

		mock := &mockChecker{report: &residual.Report{Findings: []residual.Finding{{Kind: "heading", Line: 1}}}}
		conv := mustConverter(t, withChecker(mock))
		res, err := conv.Convert(context.Background(), Input{Markdown: "*x*"})
		if err != nil {
			t.Fatal(err)
		}
		if mock.input != "x" {
			t.Errorf("checker input = %q, want %q", mock.input, "x")
		}
		if len(res.Residual) != 1 {
			t.Errorf("Residual = %v", res.Residual)
		}
	})

	t.Run("checker error", func(t *testing.T) {
		t.Parallel()

		mock := &mockChecker{err: ErrResidualCheck}
		conv := mustConverter(t, withChecker(mock))
		_, err := conv.Convert(context.Background(), Input{Markdown: "x"})
		if !errors.Is(err, ErrResidualCheck) {
			t.Errorf("error = %v, want ErrResidualCheck", err)
		}
	})

	t.Run("checker panic is recovered", func(t *testing.T) {
		t.Parallel()

		conv := mustConverter(t, withChecker(&mockChecker{panic: true}))
		_, err := conv.Convert(context.Background(), Input{Markdown: "x"})
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Errorf("error = %v, want internal error", err)
		}
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		res, err := mustConverter(t).Convert(context.Background(), Input{Markdown: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if res.Checked || res.Residual != nil {
			t.Errorf("Checked = %v, Residual = %v", res.Checked, res.Residual)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert_Concurrent - Shared converter
// ---------------------------------------------------------------------------

func TestConvert_Concurrent(t *testing.T) {
	t.Parallel()

	conv := mustConverter(t, WithResidualCheck())
	doc := "# Head\n\n* item **one**\n* item [two](x)\n\n```\ncode\n```\n"

	want, err := conv.Convert(context.Background(), Input{Markdown: doc, Record: true})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := conv.Convert(context.Background(), Input{Markdown: doc, Record: true})
			if err != nil {
				errs <- err.Error()
				return
			}
			if got.Text != want.Text || got.Removed.Render() != want.Removed.Render() {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

// ---------------------------------------------------------------------------
// TestStepNames / TestCategories - Public registries
// ---------------------------------------------------------------------------

func TestStepNames(t *testing.T) {
	t.Parallel()

	names := StepNames()
	if names[0] != "Line endings" || names[len(names)-1] != "Whitespace" {
		t.Errorf("StepNames() = %v", names)
	}
	if len(Categories()) == 0 {
		t.Error("Categories() is empty")
	}
}
