package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/avdva/hdlnum"
)

// Process exit codes. Zero is success.
const (
	ExitFailure      = 1 // a declaration or value is invalid
	ExitCommandError = 2 // bad arguments or unreadable input
)

// Error codes reported in CLI responses.
const (
	ErrCodeGeneric       = "E001"
	ErrCodeParse         = "E002"
	ErrCodeNotFound      = "E003"
	ErrCodeRange         = "E101" // hdlnum.ErrRange
	ErrCodeIndex         = "E102" // hdlnum.ErrIndex
	ErrCodeDomain        = "E103" // hdlnum.ErrDomain
	ErrCodePrecision     = "E104" // hdlnum.ErrPrecision
	ErrCodeExactDivision = "E105" // hdlnum.ErrExactDivision
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode returns the exit code carried by err, or ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return ExitFailure
	}
	return exitErr.Code
}

// errorCode maps value errors to response codes.
func errorCode(err error) string {
	var pe *ParseError
	switch {
	case errors.As(err, &pe):
		return ErrCodeParse
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, hdlnum.ErrRange):
		return ErrCodeRange
	case errors.Is(err, hdlnum.ErrIndex):
		return ErrCodeIndex
	case errors.Is(err, hdlnum.ErrDomain):
		return ErrCodeDomain
	case errors.Is(err, hdlnum.ErrPrecision):
		return ErrCodePrecision
	case errors.Is(err, hdlnum.ErrExactDivision):
		return ErrCodeExactDivision
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter writes command results as text or as a json envelope.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics, Writer if nil.
	Verbose   bool
}

// CLIResponse is the json envelope of every command result.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error".
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError describes a failed command.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data. Text output relies on data's String method.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format != "json" {
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
}

func (f *OutputFormatter) writeError(code, message string) error {
	if f.Format != "json" {
		_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		return err
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message},
	})
}

// fail reports err and returns an ExitError for it.
// Argument errors are command errors, value errors are failures.
func (f *OutputFormatter) fail(code string, err error) error {
	_ = f.writeError(code, err.Error())
	exit := ExitFailure
	switch code {
	case ErrCodeGeneric, ErrCodeParse, ErrCodeNotFound:
		exit = ExitCommandError
	}
	return &ExitError{Code: exit, Message: code, Err: err}
}

// VerboseLog writes a diagnostic line if verbose output is on.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
