package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category represents the type of error.
type Category string

const (
	CategoryContract Category = "contract"
	CategoryConfig   Category = "config"
	CategoryLocale   Category = "locale"
	CategoryRender   Category = "render"
	CategoryPublish  Category = "publish"
	CategoryCLI      Category = "cli"
)

// Location represents a position in a source or config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// HeaderError is a structured error with a code, the offending field and a
// suggestion.
type HeaderError struct {
	// Code is a unique error identifier (e.g., "E200").
	Code string

	// Category is the error type (contract, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field is the input path that caused the error, e.g. "mainMenu[2].href".
	Field string

	// Location is the file position, for errors read from config files.
	Location *Location

	// Context contains surrounding file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HeaderError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a HeaderError with the same code. It lets
// callers match on a code with errors.Is(err, errors.New("E200")).
func (e *HeaderError) Is(target error) bool {
	t, ok := target.(*HeaderError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithField records the input path that caused the error.
func (e *HeaderError) WithField(field string) *HeaderError {
	e.Field = field
	return e
}

// WithFieldf records a formatted input path.
func (e *HeaderError) WithFieldf(format string, args ...any) *HeaderError {
	e.Field = fmt.Sprintf(format, args...)
	return e
}

// WithLocation adds a file position to the error.
func (e *HeaderError) WithLocation(file string, line, column int) *HeaderError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 2*contextRadius+1)
	return e
}

// contextRadius is how many lines around a config error are shown.
const contextRadius = 2

var yamlLine = regexp.MustCompile(`line (\d+)`)

// WithLocationFromError extracts a line number from a YAML decoder error
// ("yaml: line 5: ...") and points the error at file.
func (e *HeaderError) WithLocationFromError(file string, err error) *HeaderError {
	if err == nil || file == "" {
		return e
	}
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		return e
	}
	line, _ := strconv.Atoi(m[1])
	if line > 0 {
		e.WithLocation(file, line, 0)
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HeaderError) WithSuggestion(s string) *HeaderError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HeaderError) WithDetail(d string) *HeaderError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *HeaderError) Wrap(err error) *HeaderError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a HeaderError from a registered error code.
func New(code string) *HeaderError {
	template, ok := registry[code]
	if !ok {
		return &HeaderError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HeaderError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new HeaderError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HeaderError {
	return &HeaderError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a HeaderError.
func FromError(err error, code string) *HeaderError {
	if err == nil {
		return nil
	}
	var he *HeaderError
	if stderrors.As(err, &he) {
		return he
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a HeaderError with code.
func HasCode(err error, code string) bool {
	var he *HeaderError
	for err != nil {
		if !stderrors.As(err, &he) {
			return false
		}
		if he.Code == code {
			return true
		}
		err = he.Wrapped
	}
	return false
}
