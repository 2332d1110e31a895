package tabular

import (
	"strings"

	"golang.org/x/net/html"
)

// Visible returns the largest candidate among the table elements of the
// rendered markup, or nil when none parse. Each table parses independently;
// one bad table never aborts the scan.
func Visible(document string) *Candidate {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil
	}
	return largest(candidatesIn(root))
}

// Hidden returns the largest candidate found inside HTML comments. Stats
// sites ship extra tables pre-built but comment-wrapped for client-side
// assembly, invisible to a plain structural scan. Each comment block
// re-parses independently; blocks without table markup or that fail to
// parse are skipped.
func Hidden(document string) *Candidate {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil
	}

	var cands []*Candidate
	for _, payload := range commentBlocks(root) {
		if !strings.Contains(payload, "<table") {
			continue
		}
		frag, err := html.Parse(strings.NewReader(payload))
		if err != nil {
			continue
		}
		cands = append(cands, candidatesIn(frag)...)
	}
	return largest(cands)
}

// commentBlocks collects the payload of every comment node in the tree.
func commentBlocks(root *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			blocks = append(blocks, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}
