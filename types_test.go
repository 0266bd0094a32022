package docfill

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFormat - Output format names
// ---------------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatNative},
		{in: "native", want: FormatNative},
		{in: "DOCX", want: FormatNative},
		{in: " pdf ", want: FormatPDF},
		{in: "PDF", want: FormatPDF},
		{in: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTemplateExt - Template type detection
// ---------------------------------------------------------------------------

func TestTemplateExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "a/letter.docx", want: "docx"},
		{path: "LETTER.DOCX", want: "docx"},
		{path: "form.pdf", want: "pdf"},
		{path: "notes.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := templateExt(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("templateExt(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("templateExt(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResult_ContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		res     Result
		wantExt string
		wantCT  string
	}{
		{name: "native docx", res: Result{Format: FormatNative, ext: extDOCX}, wantExt: "docx", wantCT: ContentTypeDOCX},
		{name: "native pdf template", res: Result{Format: FormatNative, ext: extPDF}, wantExt: "pdf", wantCT: ContentTypePDF},
		{name: "converted", res: Result{Format: FormatPDF}, wantExt: "pdf", wantCT: ContentTypePDF},
		{name: "zero value", res: Result{}, wantExt: "docx", wantCT: ContentTypeDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.res.Extension(); got != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got, tt.wantExt)
			}
			if got := tt.res.ContentType(); got != tt.wantCT {
				t.Errorf("ContentType() = %q, want %q", got, tt.wantCT)
			}
		})
	}
}
