package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/pkg/content"
	"github.com/yaklabco/richview/pkg/markup/html"
)

func TestParse_Blocks(t *testing.T) {
	t.Parallel()

	nodes, err := html.ParseString(`
<h2>Title</h2>
<p>Hello   <b>bold</b> and <a href="https://example.com">a link</a>.</p>
<blockquote><p>quoted</p></blockquote>
<pre><code class="language-go">fmt.Println("x")
</code></pre>
<script>alert(1)</script>`)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	assert.Equal(t, content.KindHeading, nodes[0].Kind)
	assert.Equal(t, 2, nodes[0].Level)
	assert.Equal(t, "Title", content.PlainText(nodes[0]))

	para := nodes[1]
	assert.Equal(t, content.KindParagraph, para.Kind)
	assert.Equal(t, "Hello bold and a link.", content.PlainText(para))
	assert.Equal(t, content.KindStrong, para.Children[1].Kind)
	link := para.Children[3]
	assert.Equal(t, content.KindLink, link.Kind)
	assert.Equal(t, "https://example.com", link.URL)

	assert.Equal(t, content.KindQuote, nodes[2].Kind)
	assert.Equal(t, "quoted", content.PlainText(nodes[2]))

	code := nodes[3]
	assert.Equal(t, content.KindCodeBlock, code.Kind)
	assert.Equal(t, "language-go", code.Language)
	assert.Equal(t, "fmt.Println(\"x\")\n", code.Text)
}

func TestParse_Media(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		input    string
		wantKind content.Kind
		wantURL  string
	}

	tests := []testCase{
		{
			name:     "iframe",
			input:    `<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>`,
			wantKind: content.KindEmbed,
			wantURL:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:     "video src",
			input:    `<video src="https://example.com/a.mp4"></video>`,
			wantKind: content.KindVideo,
			wantURL:  "https://example.com/a.mp4",
		},
		{
			name:     "video source child",
			input:    `<video controls><source src="https://example.com/b.mp4" type="video/mp4"></video>`,
			wantKind: content.KindVideo,
			wantURL:  "https://example.com/b.mp4",
		},
		{
			name:     "embed",
			input:    `<div><embed src="https://vimeo.com/1"></div>`,
			wantKind: content.KindEmbed,
			wantURL:  "https://vimeo.com/1",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			nodes, err := html.ParseString(testCase.input)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			require.Len(t, nodes[0].Children, 1)

			media := nodes[0].Children[0]
			assert.Equal(t, testCase.wantKind, media.Kind)
			assert.Equal(t, testCase.wantURL, media.URL)
		})
	}
}

func TestParse_Breaks(t *testing.T) {
	t.Parallel()

	nodes, err := html.ParseString("one<br>two")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	kinds := make([]content.Kind, 0, len(nodes[0].Children))
	for _, child := range nodes[0].Children {
		kinds = append(kinds, child.Kind)
	}
	assert.Equal(t, []content.Kind{content.KindText, content.KindBreak, content.KindText}, kinds)
}

func TestParseInline(t *testing.T) {
	t.Parallel()

	nodes, err := html.ParseInline(`<iframe src="https://gfycat.com/SomeCat">`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, content.KindEmbed, nodes[0].Kind)

	nodes, err = html.ParseInline("</iframe>")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	nodes, err := html.ParseString("   \n ")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
