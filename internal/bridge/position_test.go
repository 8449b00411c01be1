package bridge

import (
	"fmt"
	"testing"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
	"github.com/stretchr/testify/assert"
)

func TestMapperRoundTrip(t *testing.T) {
	documents := []string{
		"",
		"hello",
		"a\nb\nc",
		"first line\nsecond line\n",
		"héllo wörld\nsecond\n\nfourth",
	}

	for _, content := range documents {
		t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
			mapper := NewMapper(content)
			for offset := 0; offset <= len([]rune(content)); offset++ {
				pos := mapper.OffsetToPosition(offset)
				assert.Equal(t, offset, mapper.PositionToOffset(pos), "offset %d", offset)
			}
		})
	}
}

func TestMapperPositionToOffsetClamping(t *testing.T) {
	mapper := NewMapper("ab\ncdef\ng")

	cases := []struct {
		name     string
		pos      Position
		expected int
	}{
		{"before first line", Position{Line: 0, Column: 5}, 0},
		{"past last line", Position{Line: 10, Column: 1}, 9},
		{"column past line end", Position{Line: 1, Column: 99}, 2},
		{"column before line start", Position{Line: 2, Column: 0}, 3},
		{"exact", Position{Line: 2, Column: 3}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mapper.PositionToOffset(tc.pos))
		})
	}
}

func TestMapperLineContent(t *testing.T) {
	mapper := NewMapper("first\nsecond\n\nfourth")

	assert.Equal(t, 4, mapper.LineCount())
	assert.Equal(t, "first", mapper.LineContent(1))
	assert.Equal(t, "second", mapper.LineContent(2))
	assert.Equal(t, "", mapper.LineContent(3))
	assert.Equal(t, "fourth", mapper.LineContent(4))
	assert.Equal(t, "", mapper.LineContent(0))
	assert.Equal(t, "", mapper.LineContent(5))
}

func TestWordUntil(t *testing.T) {
	mapper := NewMapper("foo.bar baz\n$qux_1")

	cases := []struct {
		name     string
		pos      Position
		word     string
		startCol int
	}{
		{"end of member name", Position{Line: 1, Column: 8}, "bar", 5},
		{"inside qualifier", Position{Line: 1, Column: 4}, "foo", 1},
		{"after separator", Position{Line: 1, Column: 5}, "", 5},
		{"after space", Position{Line: 1, Column: 9}, "", 9},
		{"dollar and underscore", Position{Line: 2, Column: 7}, "$qux_1", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := mapper.WordUntil(tc.pos)
			assert.Equal(t, tc.word, info.Word)
			assert.Equal(t, tc.startCol, info.StartColumn)
		})
	}
}

func TestQualifierBefore(t *testing.T) {
	t.Run("dotted", func(t *testing.T) {
		mapper := NewMapper("foo.bar")
		word := mapper.WordUntil(Position{Line: 1, Column: 8})
		prev := mapper.QualifierBefore(1, word)
		assert.Equal(t, "foo", prev.Word)
		assert.Equal(t, 1, prev.StartColumn)
	})

	t.Run("space separated", func(t *testing.T) {
		mapper := NewMapper("foo bar")
		word := mapper.WordUntil(Position{Line: 1, Column: 8})
		prev := mapper.QualifierBefore(1, word)
		assert.Equal(t, "", prev.Word)
	})

	t.Run("line start", func(t *testing.T) {
		mapper := NewMapper("bar")
		word := mapper.WordUntil(Position{Line: 1, Column: 4})
		prev := mapper.QualifierBefore(1, word)
		assert.Equal(t, "", prev.Word)
	})
}

func TestHasTextAfter(t *testing.T) {
	mapper := NewMapper("abc  \nde f")

	assert.False(t, mapper.HasTextAfter(Position{Line: 1, Column: 4}))
	assert.True(t, mapper.HasTextAfter(Position{Line: 1, Column: 1}))
	assert.True(t, mapper.HasTextAfter(Position{Line: 2, Column: 3}))
	assert.False(t, mapper.HasTextAfter(Position{Line: 2, Column: 5}))
}

func TestProtocolConversionUTF16(t *testing.T) {
	// The emoji occupies one rune column but two UTF-16 code units.
	mapper := NewMapper("😀x\nplain")

	t.Run("from protocol past surrogate pair", func(t *testing.T) {
		pos := mapper.FromProtocol(protocol.Position{Line: 0, Character: 2})
		assert.Equal(t, Position{Line: 1, Column: 2}, pos)

		pos = mapper.FromProtocol(protocol.Position{Line: 0, Character: 3})
		assert.Equal(t, Position{Line: 1, Column: 3}, pos)
	})

	t.Run("to protocol past surrogate pair", func(t *testing.T) {
		pos := mapper.ToProtocol(Position{Line: 1, Column: 2})
		assert.Equal(t, protocol.Position{Line: 0, Character: 2}, pos)

		pos = mapper.ToProtocol(Position{Line: 1, Column: 3})
		assert.Equal(t, protocol.Position{Line: 0, Character: 3}, pos)
	})

	t.Run("ascii identity", func(t *testing.T) {
		pos := mapper.FromProtocol(protocol.Position{Line: 1, Character: 3})
		assert.Equal(t, Position{Line: 2, Column: 4}, pos)
		assert.Equal(t, protocol.Position{Line: 1, Character: 3}, mapper.ToProtocol(pos))
	})
}

func TestSpanToProtocol(t *testing.T) {
	mapper := NewMapper("ab\ncdef")

	rng := mapper.SpanToProtocol(analysis.Span{Start: 3, Length: 2})
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, rng.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, rng.End)
}
