package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/app"
	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		expected   *app.Config
		shouldExit bool
		exitCode   int
	}{
		{
			name: "positional path with defaults",
			args: []string{"systems/"},
			expected: &app.Config{
				SourcePaths:    []string{"systems/"},
				LogFormat:      "text",
				LogLevel:       "info",
				PublishTimeout: 10 * time.Second,
			},
		},
		{
			name: "repeated src flags come before positional paths",
			args: []string{"-src", "a.hcl", "-src", "b", "c.hcl"},
			expected: &app.Config{
				SourcePaths:    []string{"a.hcl", "b", "c.hcl"},
				LogFormat:      "text",
				LogLevel:       "info",
				PublishTimeout: 10 * time.Second,
			},
		},
		{
			name: "all options",
			args: []string{
				"-out", "model.msgpack", "-log-format", "JSON", "-log-level", "debug",
				"-serve-port", "8080", "-publish-url", "http://localhost:3000/socket.io/",
				"-publish-namespace", "/viewer", "-publish-timeout", "2s", "-publish-insecure", "src",
			},
			expected: &app.Config{
				SourcePaths:      []string{"src"},
				OutPath:          "model.msgpack",
				LogFormat:        "json",
				LogLevel:         "debug",
				ServeAddr:        ":8080",
				PublishURL:       "http://localhost:3000/socket.io/",
				PublishNamespace: "/viewer",
				PublishTimeout:   2 * time.Second,
				PublishInsecure:  true,
			},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no path prints usage", args: []string{}, shouldExit: true},
		{name: "unknown flag", args: []string{"-nope"}, exitCode: ExitUsage},
		{name: "bad log format", args: []string{"-log-format", "xml", "src"}, exitCode: ExitUsage},
		{name: "bad log level", args: []string{"-log-level", "loud", "src"}, exitCode: ExitUsage},
		{name: "bad port", args: []string{"-serve-port", "70000", "src"}, exitCode: ExitUsage},
		{name: "insecure without url", args: []string{"-publish-insecure", "src"}, exitCode: ExitUsage},
		{name: "negative timeout", args: []string{"-publish-url", "http://x", "-publish-timeout", "-1s", "src"}, exitCode: ExitUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.exitCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.exitCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			if tc.shouldExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
	}{
		{name: "exit error passes through", err: &ExitError{Code: ExitUsage, Message: "bad"}, code: ExitUsage},
		{name: "gate failure is internal", err: fmt.Errorf("export: %w", &diag.SerializationInvariantError{Path: "x", Type: types.NoHint()}), code: ExitInternal},
		{name: "surviving placeholder is internal", err: &diag.InvariantError{Path: "x", Type: types.NoHint()}, code: ExitInternal},
		{name: "resolution failure is a compile error", err: &diag.UndeclaredVariableError{}, code: ExitCompile},
		{name: "wrapped body failure is a compile error", err: &diag.FunctionError{Annotation: 1, Err: &diag.InvalidNameError{Segment: "a.b"}}, code: ExitCompile},
		{name: "syntax error is a compile error", err: &app.SourceError{Diags: hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "Unclosed block"}}}, code: ExitCompile},
		{name: "missing source path is a compile error", err: &app.InputError{Err: fs.ErrNotExist}, code: ExitCompile},
		{name: "body failure without a source cause is internal", err: &diag.FunctionError{Annotation: 0, Err: errors.New("unsupported annotation")}, code: ExitInternal},
		{name: "anything else is internal", err: fmt.Errorf("failed to write export: %w", errors.New("disk full")), code: ExitInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			assert.Equal(t, tc.code, got.Code)
			assert.Equal(t, tc.err.Error(), got.Message)
		})
	}
}
