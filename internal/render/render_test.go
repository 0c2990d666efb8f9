package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(""))
}

func TestRender_LineKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind BlockKind
		text string
	}{
		{name: "dash bullet strips prefix", line: "- Dal and Roti", kind: BlockBullet, text: "Dal and Roti"},
		{name: "star bullet strips prefix", line: "* Idli with Sambar", kind: BlockBullet, text: "Idli with Sambar"},
		{name: "numbered keeps prefix", line: "1. Breakfast: Poha", kind: BlockNumbered, text: "1. Breakfast: Poha"},
		{name: "double digit numbered", line: "12. Dinner: Khichdi", kind: BlockNumbered, text: "12. Dinner: Khichdi"},
		{name: "blank line", line: "   ", kind: BlockGap, text: ""},
		{name: "plain paragraph", line: "Eat more vegetables.", kind: BlockParagraph, text: "Eat more vegetables."},
		{name: "number without dot is a paragraph", line: "7 days of meals", kind: BlockParagraph, text: "7 days of meals"},
		{name: "dash without space is a paragraph", line: "-not a bullet", kind: BlockParagraph, text: "-not a bullet"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Render(tc.line)
			require.Len(t, blocks, 1)
			assert.Equal(t, tc.kind, blocks[0].Kind)
			assert.Equal(t, tc.text, joinSpans(blocks[0].Spans))
		})
	}
}

func TestRender_PreservesLineCountAndOrder(t *testing.T) {
	input := "Here is a plan:\n\n- **Breakfast**: Poha\n- Lunch: Dal\n1. Note one\nStay hydrated."
	blocks := Render(input)

	require.Len(t, blocks, strings.Count(input, "\n")+1)
	kinds := make([]BlockKind, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(
		t,
		[]BlockKind{BlockParagraph, BlockGap, BlockBullet, BlockBullet, BlockNumbered, BlockParagraph},
		kinds,
	)
}

func TestRender_NoMarkersNoEmphasis(t *testing.T) {
	inputs := []string{
		"plain text",
		"- a bullet without markers",
		"1. a numbered line",
		"multi\nline\ninput with * stray star",
	}
	for _, input := range inputs {
		for _, block := range Render(input) {
			for _, span := range block.Spans {
				assert.Falsef(t, span.Bold, "input %q produced bold span %q", input, span.Text)
			}
		}
	}
}

func TestRender_AlternatingSpans(t *testing.T) {
	blocks := Render("eat **Paneer** and **Curd** daily")
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Spans, 5)

	for i, span := range blocks[0].Spans {
		assert.Equal(t, i%2 == 1, span.Bold, "span %d", i)
	}
	assert.Equal(t, "eat **Paneer** and **Curd** daily", "eat **"+blocks[0].Spans[1].Text+"** and **"+blocks[0].Spans[3].Text+"** daily")
}

func TestRender_BoldSpans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		spans []Span
	}{
		{
			name:  "single bold span",
			input: "**Dal** is protein",
			spans: []Span{{Text: "Dal", Bold: true}, {Text: " is protein"}},
		},
		{
			name:  "unmatched trailing marker stays literal",
			input: "some **bold** and **broken",
			spans: []Span{{Text: "some "}, {Text: "bold", Bold: true}, {Text: " and **broken"}},
		},
		{
			name:  "lone marker pair stays literal",
			input: "just ** here",
			spans: []Span{{Text: "just ** here"}},
		},
		{
			name:  "bold inside a bullet",
			input: "- **Lunch**: Rajma Chawal",
			spans: []Span{{Text: "Lunch", Bold: true}, {Text: ": Rajma Chawal"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Render(tc.input)
			require.Len(t, blocks, 1)
			assert.Equal(t, tc.spans, blocks[0].Spans)
		})
	}
}

func TestRender_TotalOverArbitraryInput(t *testing.T) {
	inputs := []string{
		"****",
		"**",
		"\n\n\n",
		"- ",
		"1. ",
		"***bold?**",
		strings.Repeat("*", 101),
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { Render(input) }, "input %q", input)
	}
}

func joinSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
