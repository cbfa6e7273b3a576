package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[1;31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiDim    = "\033[90m"
)

// Output formats accepted by Fprint.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format. The CLI calls it for
// --no-color and NO_COLOR.
func DisableColors() {
	colorEnabled = false
}

func paint(ansi, text string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return ansi + text + ansiReset
}

// labelWidth aligns the row labels under the headline.
const labelWidth = 7

// Format renders the error for a terminal. Each present field gets one
// labelled row; config errors also show the offending lines of the file:
//
//	✗ E200 contract: Main menu entry is missing an href
//	    field  mainMenu[2].href
//	           Every item and submenu in the main menu links somewhere...
//	     hint  Give the entry an href such as "/pricing"
func (e *HeaderError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(paint(ansiRed, "✗ "+e.headline()))
	b.WriteString(" ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	row(&b, "field", paint(ansiYellow, e.Field))
	if e.Location != nil {
		row(&b, "file", paint(ansiCyan, e.Location.String()))
		e.writeSource(&b)
	}
	for _, line := range wrapText(e.Detail, 68) {
		row(&b, "", line)
	}
	row(&b, "hint", e.Suggestion)
	if e.Wrapped != nil {
		row(&b, "cause", e.Wrapped.Error())
	}
	b.WriteString("\n")

	return b.String()
}

// headline is "E200 contract:" or just the category for uncoded errors.
func (e *HeaderError) headline() string {
	switch {
	case e.Code != "" && e.Category != "":
		return fmt.Sprintf("%s %s:", e.Code, e.Category)
	case e.Code != "":
		return e.Code + ":"
	case e.Category != "":
		return string(e.Category) + ":"
	}
	return "error:"
}

// row writes one aligned "label  value" line; empty values are skipped.
func row(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s  %s\n", paint(ansiDim, fmt.Sprintf("%*s", labelWidth, label)), value)
}

// writeSource prints the context lines read for a config error, marking the
// failing line.
func (e *HeaderError) writeSource(b *strings.Builder) {
	first := max(1, e.Location.Line-contextRadius)
	for i, line := range e.Context {
		n := first + i
		marker := " "
		if n == e.Location.Line {
			marker = paint(ansiRed, ">")
		}
		row(b, "", fmt.Sprintf("%s %4d | %s", marker, n, line))
	}
}

// wrapText breaks text into lines of at most width runes at word boundaries.
func wrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// jsonError is the wire form of a HeaderError.
type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category,omitempty"`
	Message    string   `json:"message"`
	Field      string   `json:"field,omitempty"`
	Location   string   `json:"location,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Cause      string   `json:"cause,omitempty"`
}

// MarshalJSON encodes the error for machine consumers such as
// `siteheader --error-format=json`.
func (e *HeaderError) MarshalJSON() ([]byte, error) {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Field:      e.Field,
		Location:   e.Location.String(),
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

// LogValue groups the error's fields so slog handlers log code and field
// as separate keys.
func (e *HeaderError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("code", e.Code)}
	if e.Category != "" {
		attrs = append(attrs, slog.String("category", string(e.Category)))
	}
	attrs = append(attrs, slog.String("message", e.Message))
	if e.Field != "" {
		attrs = append(attrs, slog.String("field", e.Field))
	}
	if e.Location != nil {
		attrs = append(attrs, slog.String("location", e.Location.String()))
	}
	if e.Wrapped != nil {
		attrs = append(attrs, slog.String("cause", e.Wrapped.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Attr returns err as an "error" log attribute. HeaderErrors anywhere in the
// chain are logged as a group, other errors as their message.
func Attr(err error) slog.Attr {
	var he *HeaderError
	if stderrors.As(err, &he) {
		return slog.Any("error", he)
	}
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Fprint writes err to w as text (Format) or as one JSON line.
func Fprint(w io.Writer, err error, format string) {
	var he *HeaderError
	if !stderrors.As(err, &he) {
		he = &HeaderError{Message: err.Error()}
	}
	if format == FormatJSON {
		b, jerr := json.Marshal(he)
		if jerr != nil {
			fmt.Fprintf(w, "{\"message\":%q}\n", err.Error())
			return
		}
		fmt.Fprintf(w, "%s\n", b)
		return
	}
	fmt.Fprint(w, he.Format())
}
