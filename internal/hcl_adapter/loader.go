package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/decl"
	"github.com/specialistvlad/sysdc/internal/fsutil"
)

// Extension is the suffix of source files picked up from directories.
const Extension = ".hcl"

// Loader reads HCL sources into a raw declaration tree.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every HCL file found under paths. Directories are searched
// recursively; files are read in lexical order so that declaration order is
// stable between runs. All syntax errors of all files are reported together.
func (l *Loader) Load(ctx context.Context, paths ...string) (*decl.System, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", Extension, paths)
	}
	sort.Strings(files)
	logger.Debug("Discovered HCL files.", "count", len(files))

	sys := &decl.System{}
	var diags hcl.Diagnostics
	for _, file := range files {
		f, parseDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}
		units, fileDiags := l.translateFile(ctx, f.Body)
		diags = append(diags, fileDiags...)
		sys.Units = append(sys.Units, units...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("HCL loading complete.", "files", len(files), "units", len(sys.Units))
	return sys, nil
}

// LoadSource parses a single in-memory HCL document.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*decl.System, error) {
	f, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	units, diags := l.translateFile(ctx, f.Body)
	if diags.HasErrors() {
		return nil, diags
	}
	return &decl.System{Units: units}, nil
}

// Files returns the source files seen by this loader, keyed by name. It is
// used to render diagnostics with source snippets.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}
