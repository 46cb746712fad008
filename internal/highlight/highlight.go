package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// Highlighter renders source code with ANSI colors for the terminal
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New returns a highlighter using the named chroma style and formatter.
// Unknown names fall back to chroma's defaults.
func New(style, formatter string) *Highlighter {
	return &Highlighter{
		style:     styles.Get(style),
		formatter: formatters.Get(formatter),
	}
}

// Default returns a monokai terminal256 highlighter
func Default() *Highlighter {
	return New(DefaultStyle, DefaultFormatter)
}

// Code highlights src using the lexer registered for mode (a chroma
// alias such as "cpp" or "python"). Unknown modes are rendered with the
// plain text lexer.
func (h *Highlighter) Code(src, mode string) (string, error) {
	lexer := lexers.Get(mode)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", mode, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", mode, err)
	}
	return buf.String(), nil
}

// Supported reports whether chroma has a lexer for mode
func Supported(mode string) bool {
	return lexers.Get(mode) != nil
}
