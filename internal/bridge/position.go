package bridge

import (
	"strings"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// Position is a 1-based line/column point in a document. Columns count
// runes, not bytes, so multi-byte characters occupy one column.
type Position struct {
	Line   int
	Column int
}

// Range is a contiguous region of text in line/column form
type Range struct {
	Start Position
	End   Position
}

// WordInfo describes the identifier run ending at a position
type WordInfo struct {
	// Word is the identifier text, empty when the position does not
	// follow an identifier character.
	Word string
	// StartColumn is the 1-based column of the word's first character
	StartColumn int
	// EndColumn is the 1-based column one past the word's last character
	EndColumn int
}

// Mapper converts between a document's line/column coordinates and a
// single linear rune offset. It is a pure function of the document
// content snapshot it was built from.
type Mapper struct {
	runes      []rune
	lineStarts []int // rune offset of each line start
}

// NewMapper builds a mapper over a content snapshot.
func NewMapper(content string) *Mapper {
	runes := []rune(content)
	lineStarts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Mapper{runes: runes, lineStarts: lineStarts}
}

// LineCount returns the number of lines in the document.
func (m *Mapper) LineCount() int {
	return len(m.lineStarts)
}

// lineEnd returns the rune offset one past the last character of a
// line, excluding its newline.
func (m *Mapper) lineEnd(line int) int {
	if line+1 < len(m.lineStarts) {
		return m.lineStarts[line+1] - 1
	}
	return len(m.runes)
}

// LineContent returns the text of a 1-based line, excluding the newline.
func (m *Mapper) LineContent(line int) string {
	if line < 1 || line > len(m.lineStarts) {
		return ""
	}
	return string(m.runes[m.lineStarts[line-1]:m.lineEnd(line-1)])
}

// PositionToOffset converts a 1-based position to a 0-based rune offset.
// Out-of-bounds positions are clamped to the nearest valid point.
func (m *Mapper) PositionToOffset(pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	if pos.Line > len(m.lineStarts) {
		return len(m.runes)
	}
	line := pos.Line - 1
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	if max := m.lineEnd(line) - m.lineStarts[line]; col > max {
		col = max
	}
	return m.lineStarts[line] + col
}

// OffsetToPosition converts a 0-based rune offset to a 1-based position.
func (m *Mapper) OffsetToPosition(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.runes) {
		offset = len(m.runes)
	}

	// Binary search for the line containing the offset
	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return Position{Line: lo + 1, Column: offset - m.lineStarts[lo] + 1}
}

// SpanToRange projects a service-reported span into line/column form.
func (m *Mapper) SpanToRange(span analysis.Span) Range {
	return Range{
		Start: m.OffsetToPosition(span.Start),
		End:   m.OffsetToPosition(span.End()),
	}
}

// isWordRune reports whether r can be part of an identifier
func isWordRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// WordUntil returns the identifier run that ends immediately before pos.
func (m *Mapper) WordUntil(pos Position) WordInfo {
	offset := m.PositionToOffset(pos)
	lineStart := m.lineStarts[m.OffsetToPosition(offset).Line-1]

	start := offset
	for start > lineStart && isWordRune(m.runes[start-1]) {
		start--
	}

	return WordInfo{
		Word:        string(m.runes[start:offset]),
		StartColumn: start - lineStart + 1,
		EndColumn:   offset - lineStart + 1,
	}
}

// QualifierBefore returns the identifier immediately preceding word,
// when the two are separated by a path separator. A non-empty result
// marks a namespace-qualified completion context.
func (m *Mapper) QualifierBefore(line int, word WordInfo) WordInfo {
	sepCol := word.StartColumn - 1
	if sepCol < 1 {
		return WordInfo{StartColumn: word.StartColumn, EndColumn: word.StartColumn}
	}
	content := []rune(m.LineContent(line))
	if content[sepCol-1] != '.' {
		return WordInfo{StartColumn: word.StartColumn, EndColumn: word.StartColumn}
	}
	return m.WordUntil(Position{Line: line, Column: sepCol})
}

// HasTextAfter reports whether non-whitespace text follows pos on its line.
func (m *Mapper) HasTextAfter(pos Position) bool {
	content := m.LineContent(pos.Line)
	runes := []rune(content)
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(runes) {
		col = len(runes)
	}
	return strings.TrimSpace(string(runes[col:])) != ""
}

// FromProtocol converts a host protocol position (0-based, UTF-16
// columns) to a bridge position (1-based, rune columns).
func (m *Mapper) FromProtocol(pos protocol.Position) Position {
	line := pos.Line + 1
	content := m.LineContent(line)

	utf16Count := 0
	col := 0
	for _, r := range content {
		if utf16Count >= pos.Character {
			break
		}
		if r >= 0x10000 {
			utf16Count += 2
		} else {
			utf16Count++
		}
		col++
	}
	return Position{Line: line, Column: col + 1}
}

// ToProtocol converts a bridge position to a host protocol position.
func (m *Mapper) ToProtocol(pos Position) protocol.Position {
	content := []rune(m.LineContent(pos.Line))

	utf16Count := 0
	for i, r := range content {
		if i >= pos.Column-1 {
			break
		}
		if r >= 0x10000 {
			utf16Count += 2
		} else {
			utf16Count++
		}
	}
	return protocol.Position{Line: pos.Line - 1, Character: utf16Count}
}

// RangeToProtocol converts a bridge range to a host protocol range.
func (m *Mapper) RangeToProtocol(r Range) protocol.Range {
	return protocol.Range{
		Start: m.ToProtocol(r.Start),
		End:   m.ToProtocol(r.End),
	}
}

// SpanToProtocol projects a service span straight into a host protocol range.
func (m *Mapper) SpanToProtocol(span analysis.Span) protocol.Range {
	return m.RangeToProtocol(m.SpanToRange(span))
}
