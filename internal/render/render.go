// Package render turns the markdown-lite text stored in messages into
// structured display blocks. It is a deliberately small lexical pass, not a
// markdown implementation: line-prefix classification plus **bold** span
// splitting, nothing nested.
package render

import (
	"regexp"
	"strings"
)

type BlockKind string

const (
	BlockParagraph = BlockKind("paragraph")
	BlockBullet    = BlockKind("bullet")
	BlockNumbered  = BlockKind("numbered")
	BlockGap       = BlockKind("gap")
)

type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold"`
}

type Block struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans,omitempty"`
}

var numberedPrefix = regexp.MustCompile(`^\d+\.\s`)

const boldMarker = "**"

// Render is total over any input: malformed markers degrade to literal text
// and an empty input produces no blocks. One input line maps to exactly one
// output block, in order.
func Render(text string) []Block {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Kind: BlockGap})
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: spans(trimmed[2:])})
		case numberedPrefix.MatchString(trimmed):
			// The numeric prefix stays part of the rendered text.
			blocks = append(blocks, Block{Kind: BlockNumbered, Spans: spans(trimmed)})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: spans(line)})
		}
	}
	return blocks
}

// spans splits content on matched pairs of ** markers, alternating plain and
// bold starting with plain. An unmatched marker is kept as literal text.
func spans(content string) []Span {
	var out []Span
	rest := content
	for {
		open := strings.Index(rest, boldMarker)
		if open < 0 {
			break
		}
		length := strings.Index(rest[open+2:], boldMarker)
		if length < 0 {
			break
		}
		if open > 0 {
			out = append(out, Span{Text: rest[:open]})
		}
		if length > 0 {
			out = append(out, Span{Text: rest[open+2 : open+2+length], Bold: true})
		}
		rest = rest[open+2+length+2:]
	}
	if rest != "" {
		out = append(out, Span{Text: rest})
	}
	return out
}
