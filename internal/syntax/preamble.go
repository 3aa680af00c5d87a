// Package syntax provides the document-level passes that sit beside the
// full IDL parser: preamble detection (version/namespace/use, tolerant of
// comments and blank lines) and shape-id extraction at a cursor position.
// Both are intentionally independent of idl.ParseIDL so they stay fast and
// keep working over arbitrarily broken text.
package syntax

import "strings"

// Span is a half-open byte offset range, [Start, End).
type Span struct {
	Start int
	End   int
}

// UseImport is a single `use <id>` statement found in the preamble.
type UseImport struct {
	Span  Span
	Value string
}

// Preamble is the result of ExtractPreamble: the handful of facts about a
// file's header that auto-import and navigation features need without
// paying for a full parse.
type Preamble struct {
	Version      *Span
	VersionValue string

	Namespace      *Span
	NamespaceValue string

	Uses []UseImport

	// BlankBeforeBody reports whether at least one blank line separates the
	// preamble from the first body statement.
	BlankBeforeBody bool

	// UsesBlankSeparatedFromNamespace reports whether the first use
	// statement is separated from the namespace statement by a blank line.
	// False when there is no namespace or no use statement.
	UsesBlankSeparatedFromNamespace bool

	OperationInputSuffix  string
	OperationOutputSuffix string
}

// DocumentText is the minimal surface ExtractPreamble/DocumentIDAt need
// from a document.Document.
type DocumentText interface {
	BorrowText() string
}

type lineRec struct {
	start, end int
	text       string
}

func splitLines(text string) []lineRec {
	var out []lineRec
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			out = append(out, lineRec{start, end, text[start:end]})
			start = i + 1
		}
	}
	if start <= len(text) {
		out = append(out, lineRec{start, len(text), text[start:]})
	}
	return out
}

func stripLineComment(s string) string {
	if idx := strings.Index(s, "//"); idx != -1 {
		return s[:idx]
	}
	return s
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func isBoundary(c byte) bool { return c == ' ' || c == '\t' }

// ExtractPreamble runs the tolerant header scan described in package docs.
func ExtractPreamble(doc DocumentText) Preamble {
	p := Preamble{OperationInputSuffix: "Input", OperationOutputSuffix: "Output"}
	lines := splitLines(doc.BorrowText())

	blankRun := false
	for _, ln := range lines {
		code := stripLineComment(ln.text)
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			blankRun = true
			continue
		}

		leadWS := len(ln.text) - len(strings.TrimLeft(ln.text, " \t"))
		lineStart := ln.start + leadWS
		trimmedRightLen := len(strings.TrimRight(code, " \t\r"))
		lineEnd := ln.start + trimmedRightLen

		switch {
		case trimmed[0] == '$':
			p.applyControl(lineStart, lineEnd, trimmed)
			blankRun = false

		case strings.HasPrefix(trimmed, "namespace") && (len(trimmed) == 9 || isBoundary(trimmed[9])):
			if p.Namespace == nil {
				sp := Span{lineStart, lineEnd}
				p.Namespace = &sp
				p.NamespaceValue = strings.TrimSpace(trimmed[len("namespace"):])
			}
			blankRun = false

		case strings.HasPrefix(trimmed, "use") && (len(trimmed) == 3 || isBoundary(trimmed[3])):
			if len(p.Uses) == 0 && p.Namespace != nil {
				p.UsesBlankSeparatedFromNamespace = blankRun
			}
			sp := Span{lineStart, lineEnd}
			p.Uses = append(p.Uses, UseImport{Span: sp, Value: strings.TrimSpace(trimmed[len("use"):])})
			blankRun = false

		default:
			p.BlankBeforeBody = blankRun
			return p
		}
	}
	return p
}

func (p *Preamble) applyControl(lineStart, lineEnd int, trimmed string) {
	rest := trimmed[1:]
	colonIdx := strings.Index(rest, ":")
	if colonIdx == -1 {
		return
	}
	key := strings.TrimSpace(rest[:colonIdx])
	value := strings.TrimSpace(rest[colonIdx+1:])
	switch key {
	case "version":
		if p.Version == nil {
			sp := Span{lineStart, lineEnd}
			p.Version = &sp
			p.VersionValue = stripQuotes(value)
		}
	case "operationInputSuffix":
		p.OperationInputSuffix = stripQuotes(value)
	case "operationOutputSuffix":
		p.OperationOutputSuffix = stripQuotes(value)
	}
}
