package projection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// metaContents parses rendered tag HTML the way a conformant consumer
// would and collects contents for one tag name, in document order.
func metaContents(t *testing.T, rendered, attr, name string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(rendered))
	require.NoError(t, err)

	var contents []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var tagName, content string
			for _, a := range n.Attr {
				switch a.Key {
				case attr:
					tagName = a.Val
				case "content":
					content = a.Val
				}
			}
			if tagName == name {
				contents = append(contents, content)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return contents
}

func TestCitationHTML_RoundTrip_RecoversAuthorsInOrder(t *testing.T) {
	rendered := BuildCitation(sampleMetadata()).HTML()

	authors := metaContents(t, rendered, "name", "citation_author")
	require.Equal(t, []string{"Rubin, Vera", "Ford, Kent"}, authors)

	titles := metaContents(t, rendered, "name", "citation_title")
	require.Equal(t, []string{"Metadata test document"}, titles)
}

func TestOpenGraphHTML_RoundTrip_RecoversAuthorsInOrder(t *testing.T) {
	rendered := BuildOpenGraph(sampleMetadata()).HTML()

	authors := metaContents(t, rendered, "property", "og:article:author")
	require.Equal(t, []string{"Vera Rubin", "Kent Ford"}, authors)
}
