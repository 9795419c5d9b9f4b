// Package errors provides error wrapping with slog annotations and source
// locations so that errors can be logged with structured context at the edge
// of the application instead of formatting it into the message.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError carries a message, an optional wrapped error, slog
// annotations, and the source location where the wrapping happened.
type annotatedError struct {
	msg         string
	err         error
	annotations []slog.Attr
	source      string
}

// NewSentinel creates a plain sentinel error suitable for errors.Is checks.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with a message and optional slog attributes. The source
// location of the Wrap call is recorded for logging with SlogError.
func Wrap(err error, msg string, annotations ...slog.Attr) error {
	return &annotatedError{
		msg:         msg,
		err:         err,
		annotations: annotations,
		source:      callerSource(2), //nolint:mnd // skip runtime.Caller and Wrap.
	}
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// SlogError converts an error into a slog group attribute containing the
// message, the source location of the outermost Wrap, and all annotations
// collected from the error chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []any{slog.String("msg", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		annotationArgs := make([]any, 0, len(annotations))
		for _, a := range annotations {
			annotationArgs = append(annotationArgs, a)
		}
		attrs = append(attrs, slog.Group("annotations", annotationArgs...))
	}

	return slog.Group("error", attrs...)
}

// collectAnnotations walks the error tree depth-first gathering annotations.
// The first source encountered (the outermost Wrap) wins.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}

	var annotated *annotatedError
	if errors.As(err, &annotated) {
		// errors.As finds the shallowest annotatedError which carries the
		// most relevant source location.
		if *source == "" {
			*source = annotated.source
		}
	}

	for e := err; e != nil; {
		var ae *annotatedError
		if errors.As(e, &ae) {
			*annotations = append(*annotations, ae.annotations...)
			e = ae.err
			continue
		}
		switch unwrapped := e.(type) { //nolint:errorlint // walking the tree on purpose.
		case interface{ Unwrap() error }:
			e = unwrapped.Unwrap()
		case interface{ Unwrap() []error }:
			for _, joined := range unwrapped.Unwrap() {
				collectAnnotations(joined, annotations, source)
			}
			return
		default:
			return
		}
	}
}

// DecoratePanic converts a recovered panic value into an error whose source
// location points at the panic site rather than the deferred recover.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}

	return &annotatedError{
		msg:         fmt.Sprintf("panic: %v", recovered),
		err:         nil,
		annotations: nil,
		source:      panicSource(),
	}
}

// callerSource formats the file:line of the caller skip frames up the stack.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// panicSource walks past runtime.gopanic to find the frame that panicked.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and panicSource.
	frames := runtime.CallersFrames(pcs[:n])

	seenGopanic := false
	fallback := ""
	for {
		frame, more := frames.Next()
		if frame.Function == "runtime.gopanic" {
			seenGopanic = true
		} else if seenGopanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		} else if fallback == "" && !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.Contains(frame.File, "annotatederror.go") {
			fallback = fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			break
		}
	}
	return fallback
}

// New creates a new error. Re-exported so callers don't need both this
// package and the standard library errors.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
