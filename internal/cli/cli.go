package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/sysdc/internal/app"
	"github.com/specialistvlad/sysdc/internal/diag"
)

// Process exit codes.
const (
	ExitCompile  = 1
	ExitUsage    = 2
	ExitInternal = 70
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Classify maps an error returned by the application to an ExitError. Only
// problems in the user's sources and source paths are compile errors; I/O,
// network and invariant failures are internal.
func Classify(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var srcErr *app.SourceError
	var inputErr *app.InputError
	if errors.As(err, &srcErr) || errors.As(err, &inputErr) || diag.IsSourceFault(err) {
		return &ExitError{Code: ExitCompile, Message: err.Error()}
	}
	return &ExitError{Code: ExitInternal, Message: err.Error()}
}

// sourceList collects repeated -src flags.
type sourceList []string

func (s *sourceList) String() string {
	return strings.Join(*s, ",")
}

func (s *sourceList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("sysdc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
sysdc - Resolves and validates system description files.

Usage:
  sysdc [options] [SOURCE_PATH...]

Arguments:
  SOURCE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var sources sourceList
	flagSet.Var(&sources, "src", "Path to a source file or directory. May be repeated.")
	outFlag := flagSet.String("out", "", "Write the resolved model to this MessagePack file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP query server. 0 is disabled.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to push the resolved model to.")
	publishNamespaceFlag := flagSet.String("publish-namespace", "/", "socket.io namespace for publishing.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", 10*time.Second, "How long to wait for the viewer to acknowledge.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), sources...)
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Source paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No source path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *servePortFlag < 0 || *servePortFlag > 65535 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid serve-port: %d", *servePortFlag)}
	}
	serveAddr := ""
	if *servePortFlag > 0 {
		serveAddr = fmt.Sprintf(":%d", *servePortFlag)
	}

	namespace := ""
	if *publishURLFlag != "" {
		namespace = *publishNamespaceFlag
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SourcePaths:      paths,
		OutPath:          *outFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		ServeAddr:        serveAddr,
		PublishURL:       *publishURLFlag,
		PublishNamespace: namespace,
		PublishTimeout:   *publishTimeoutFlag,
		PublishInsecure:  *publishInsecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
