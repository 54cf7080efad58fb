package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/sysdc/internal/compiler"
	"github.com/specialistvlad/sysdc/internal/hcl_adapter"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates a temporary directory holding the given files, keyed by
// relative path, and returns its root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// CompileHCL runs the HCL front end and the compiler over a single source
// string. Front-end errors fail the test; compile errors are returned.
func CompileHCL(t *testing.T, src string) (*model.System, error) {
	t.Helper()

	ctx := context.Background()
	raw, err := hcl_adapter.NewLoader().LoadSource(ctx, "test.hcl", []byte(src))
	require.NoError(t, err, "test source must be syntactically valid")
	return compiler.Compile(ctx, raw)
}
