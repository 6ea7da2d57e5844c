package html

import (
	"github.com/pagesift/pagesift"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// structuralTags maps each prunable region tag to the FilterOptions field
// that enables its removal. Built once at init and never mutated, so
// concurrent calls share it safely.
var structuralTags = map[atom.Atom]func(pagesift.FilterOptions) bool{
	atom.Header: func(o pagesift.FilterOptions) bool { return o.RemoveHeader },
	atom.Footer: func(o pagesift.FilterOptions) bool { return o.RemoveFooter },
	atom.Nav:    func(o pagesift.FilterOptions) bool { return o.RemoveNav },
}

// Prune removes enabled structural regions from the tree in document
// order. A region that has a main element anywhere in its subtree is
// never removed as a whole; traversal continues into its children so that
// nested non-protecting regions are still evaluated independently.
// Removed subtrees are excised whole and not revisited. Traversal never
// descends into a main subtree, so its content survives byte-for-byte.
//
// Elements carrying data-llm="keep" are spared even when their tag is
// enabled for removal.
func Prune(doc *html.Node, opts pagesift.FilterOptions) {
	if !opts.Any() {
		return
	}
	pruneChildren(doc, opts)
}

func pruneChildren(parent *html.Node, opts pagesift.FilterOptions) {
	// Collect first; siblings cannot be unlinked mid-iteration.
	var doomed []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Main {
			// Everything under main is out of bounds.
			continue
		}
		if removable(c, opts) {
			doomed = append(doomed, c)
			continue
		}
		pruneChildren(c, opts)
	}
	for _, n := range doomed {
		parent.RemoveChild(n)
	}
}

func removable(n *html.Node, opts pagesift.FilterOptions) bool {
	if n.Type != html.ElementNode {
		return false
	}
	enabled, ok := structuralTags[n.DataAtom]
	if !ok || !enabled(opts) {
		return false
	}
	if hasAttr(n, "data-llm", "keep") {
		return false
	}
	return !containsMain(n)
}

// containsMain reports whether a main element appears anywhere in the
// subtree below n.
func containsMain(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Main {
			return true
		}
		if containsMain(c) {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key, val string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key && attr.Val == val {
			return true
		}
	}
	return false
}
