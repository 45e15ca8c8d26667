package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
)

var errMoveSyntax = errors.New("usage: /move row,col row,col")

// renderBoard draws whatever grid the server sent. The board is opaque to the
// client, so cells are drawn from their shape: null is empty, a string or an
// object with a "color" field is a piece.
func renderBoard(raw json.RawMessage) string {
	var rows [][]any
	if len(raw) == 0 || json.Unmarshal(raw, &rows) != nil || len(rows) == 0 {
		return dimStyle.Render("(no board)")
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	var b strings.Builder
	b.WriteString("   ")
	for j := 0; j < width; j++ {
		b.WriteString(fmt.Sprintf("%2d", j))
	}
	for i, r := range rows {
		b.WriteString(fmt.Sprintf("\n%2d ", i))
		for j := 0; j < width; j++ {
			var cell any
			if j < len(r) {
				cell = r[j]
			}
			b.WriteString(" ")
			b.WriteString(renderCell(cell))
		}
	}
	return b.String()
}

func renderCell(cell any) string {
	glyph, color := pieceOf(cell)
	switch {
	case glyph == "":
		return dimStyle.Render("·")
	case strings.HasPrefix(color, "r"):
		return redPieceStyle.Render(glyph)
	case strings.HasPrefix(color, "b"):
		return blackPieceStyle.Render(glyph)
	default:
		return glyph
	}
}

func pieceOf(cell any) (glyph, color string) {
	switch v := cell.(type) {
	case nil:
		return "", ""
	case string:
		if v == "" {
			return "", ""
		}
		return firstRune(v), strings.ToLower(v)
	case map[string]any:
		c, _ := v["color"].(string)
		if c == "" {
			return "?", ""
		}
		glyph = strings.ToLower(firstRune(c))
		if king, _ := v["isKing"].(bool); king {
			glyph = strings.ToUpper(glyph)
		}
		return glyph, strings.ToLower(c)
	default:
		return "?", ""
	}
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

// parseMove reads "r,c r,c" into the selected piece and its destination.
func parseMove(args string) (protocol.Position, protocol.Position, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return protocol.Position{}, protocol.Position{}, errMoveSyntax
	}
	from, err := parsePosition(fields[0])
	if err != nil {
		return protocol.Position{}, protocol.Position{}, err
	}
	to, err := parsePosition(fields[1])
	if err != nil {
		return protocol.Position{}, protocol.Position{}, err
	}
	return from, to, nil
}

func parsePosition(s string) (protocol.Position, error) {
	row, col, ok := strings.Cut(s, ",")
	if !ok {
		return protocol.Position{}, errMoveSyntax
	}
	i, err := strconv.Atoi(row)
	if err != nil {
		return protocol.Position{}, errMoveSyntax
	}
	j, err := strconv.Atoi(col)
	if err != nil {
		return protocol.Position{}, errMoveSyntax
	}
	return protocol.Position{I: i, J: j}, nil
}
