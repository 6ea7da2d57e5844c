package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// boilerplateTags lists elements removed on the markdown path beyond the
// structural regions handled by Prune. Preservable with data-llm="keep".
var boilerplateTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Aside:    true,
}

// StripAnnotations applies the data-llm annotation contract and replaces
// non-textual elements with textual placeholders:
//
//   - elements with data-llm="drop" are removed, data-llm="keep" always
//     spares an element;
//   - scripts with data-llm-description become a text node describing the
//     script, other boilerplate (script, style, noscript, svg, iframe,
//     aside) is removed;
//   - img elements become "[Image: alt]" ("[Image]" without alt text), or
//     are removed when removeImagesNoAlt is set and no alt text exists.
//
// Annotation stripping runs only on the markdown path; the HTML filter
// pipeline leaves everything outside the structural regions untouched.
func StripAnnotations(doc *html.Node, removeImagesNoAlt bool) {
	describeScripts(doc)
	replaceImages(doc, removeImagesNoAlt)
	stripBoilerplate(doc)
}

// describeScripts replaces scripts carrying data-llm-description with a
// text node so the description survives boilerplate removal.
func describeScripts(parent *html.Node) {
	type replacement struct {
		node *html.Node
		desc string
	}

	var pending []replacement
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Script {
			desc := getAttr(c, "data-llm-description")
			if !hasAttr(c, "data-llm", "keep") && strings.TrimSpace(desc) != "" {
				pending = append(pending, replacement{node: c, desc: desc})
			}
			continue
		}
		describeScripts(c)
	}

	for _, item := range pending {
		parent.InsertBefore(&html.Node{
			Type: html.TextNode,
			Data: "Javascript description: " + item.desc,
		}, item.node)
		parent.RemoveChild(item.node)
	}
}

// replaceImages swaps img elements for their alt text.
func replaceImages(parent *html.Node, removeIfNoAlt bool) {
	type replacement struct {
		node   *html.Node
		alt    string
		remove bool
	}

	var pending []replacement
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			alt := getAttr(c, "alt")
			pending = append(pending, replacement{
				node:   c,
				alt:    alt,
				remove: alt == "" && removeIfNoAlt,
			})
			continue
		}
		replaceImages(c, removeIfNoAlt)
	}

	for _, item := range pending {
		if !item.remove {
			text := "[Image]"
			if item.alt != "" {
				text = "[Image: " + item.alt + "]"
			}
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, item.node)
		}
		parent.RemoveChild(item.node)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// stripBoilerplate removes boilerplate elements and anything marked
// data-llm="drop".
func stripBoilerplate(parent *html.Node) {
	var doomed []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasAttr(c, "data-llm", "drop") {
			doomed = append(doomed, c)
			continue
		}
		if c.Type == html.ElementNode && boilerplateTags[c.DataAtom] && !hasAttr(c, "data-llm", "keep") {
			doomed = append(doomed, c)
			continue
		}
		stripBoilerplate(c)
	}
	for _, n := range doomed {
		parent.RemoveChild(n)
	}
}
