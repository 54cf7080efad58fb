package app

import (
	"bytes"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// SourceError carries front-end diagnostics together with the parsed files so
// that messages can quote the offending source lines.
type SourceError struct {
	Diags hcl.Diagnostics
	Files map[string]*hcl.File
}

func (e *SourceError) Error() string {
	var buf bytes.Buffer
	wr := hcl.NewDiagnosticTextWriter(&buf, e.Files, 100, false)
	if err := wr.WriteDiagnostics(e.Diags); err != nil {
		return e.Diags.Error()
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (e *SourceError) Unwrap() error {
	return e.Diags
}

// InputError reports source paths that could not be read or held no
// declaration files.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "failed to load sources: " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}
