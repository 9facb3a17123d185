package parser

import (
	"strings"

	"github.com/skyquery-adql/adql/lexer"
	"github.com/skyquery-adql/adql/token"
)

// QuickFix is a pure text-rewriting pass over raw ADQL source, run before
// lexing/parsing proper. It repairs the single most common authoring
// mistake the grammar can't otherwise recover from: a reserved word used
// as a qualified-name part, e.g. "cat.point" or "point.ra" where POINT
// collides with the geometry function keyword. Any keyword token found
// immediately before or after a '.' is rewritten as a delimited
// identifier ("point" -> "\"point\""), which the lexer then scans as a
// case-sensitive IDENT rather than a keyword.
//
// QuickFix never changes token count or order, only whether a token is
// quoted, so a query that parses today still parses identically after
// QuickFix reports changed=false.
func QuickFix(input string, version token.Version) (fixed string, changed bool) {
	type edit struct {
		start, end int
		text       string
	}
	var edits []edit

	l := lexer.New(input, version)
	var prev token.Item
	havePrev := false
	for {
		cur := l.Next()
		if cur.Type == token.EOF {
			break
		}
		if cur.Type.IsKeyword() {
			next := l.Peek()
			before := havePrev && prev.Type == token.DOT
			after := next.Type == token.DOT
			if before || after {
				edits = append(edits, edit{
					start: cur.Pos.Offset,
					end:   cur.Pos.Offset + len(cur.Value),
					text:  `"` + cur.Value + `"`,
				})
			}
		}
		prev = cur
		havePrev = true
	}
	if len(edits) == 0 {
		return input, false
	}

	var sb strings.Builder
	last := 0
	for _, e := range edits {
		sb.WriteString(input[last:e.start])
		sb.WriteString(e.text)
		last = e.end
	}
	sb.WriteString(input[last:])
	return sb.String(), true
}
