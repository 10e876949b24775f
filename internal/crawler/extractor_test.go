package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	t.Run("finds anchors and normalizes them against the base", func(t *testing.T) {
		body := []byte(`<body>
			<a href="index.html">home</a>
			<a href="/about#team">about</a>
			<a href="https://other.com/x">external</a>
			<a href="mailto:hi@example.com">mail</a>
			<a>no href</a>
		</body>`)

		links := ExtractLinks("http://example.com/blog/", body)

		assert.Equal(t, []string{
			"http://example.com/blog/index.html",
			"http://example.com/about",
			"https://other.com/x",
		}, links)
	})

	t.Run("returns nothing for a page without anchors", func(t *testing.T) {
		assert.Empty(t, ExtractLinks("http://example.com/", []byte(`<p>plain text</p>`)))
	})
}
