package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
)

// defaultHighlightStyle is the chroma style used when none is configured.
const defaultHighlightStyle = "monokai"

// Highlight writes source to w with syntax highlighting chosen from the
// file name. Unknown extensions render as plain text. An empty styleName
// selects the default style.
func Highlight(w io.Writer, name, source, styleName string) error {
	lexer := lexerFor(name)

	if styleName == "" {
		styleName = defaultHighlightStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise %s: %w", name, err)
	}

	return formatter.Format(w, style, iterator)
}

// lexerFor picks a lexer from the file name, falling back to plain text.
func lexerFor(name string) chroma.Lexer {
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// RenderFile returns a file's contents framed with a name header and
// highlighted for the terminal.
func RenderFile(name, content, styleName string) (string, error) {
	var sb strings.Builder
	sb.WriteString(FileHeaderStyle.Render(fmt.Sprintf("── %s", name)))
	sb.WriteString("\n")

	if err := Highlight(&sb, name, content, styleName); err != nil {
		return "", err
	}

	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
