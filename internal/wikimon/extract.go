package wikimon

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/rafa/digimon-searcher/internal/domain"
)

var (
	whitespace    = regexp.MustCompile(`\s+`)
	attackHeading = regexp.MustCompile(`(?i)attack|special move|technique`)
)

// firstParagraph returns the text of the first direct <p> child of the
// content container that is long enough to be a real description.
func firstParagraph(doc *html.Node) string {
	content := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "mw-parser-output")
	})
	if content == nil {
		return ""
	}
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "p") {
			if text := textContent(c); len(text) > 60 {
				return text
			}
		}
	}
	return ""
}

// mainImage picks the page's primary image: an image served directly
// from /images/, then any direct link to /images/, then the image
// anchor (which may only point at a File: page).
func mainImage(doc *html.Node, absolutize func(string) string) string {
	if img := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "img") && strings.Contains(attrVal(n, "src"), "/images/")
	}); img != nil {
		return absolutize(attrVal(img, "src"))
	}
	if a := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && strings.Contains(attrVal(n, "href"), "/images/")
	}); a != nil {
		return absolutize(attrVal(a, "href"))
	}
	if a := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "image")
	}); a != nil {
		return absolutize(attrVal(a, "href"))
	}
	return ""
}

// attackTechniques reads the attack tables: any wikitable whose
// headers carry both a name-ish and a description-ish column. When no
// table matches, it falls back to the list following an attacks
// heading, yielding names without descriptions.
func attackTechniques(doc *html.Node) []domain.Attack {
	var attacks []domain.Attack

	tables := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "table") && hasClass(n, "wikitable")
	})
	for _, tbl := range tables {
		var hasName, hasDesc bool
		for _, th := range findAll(tbl, elementPred("th")) {
			h := strings.ToLower(textContent(th))
			if strings.Contains(h, "description") || strings.Contains(h, "effect") {
				hasDesc = true
			}
			if strings.Contains(h, "name") || strings.Contains(h, "special") {
				hasName = true
			}
		}
		if !hasName || !hasDesc {
			continue
		}
		for i, tr := range findAll(tbl, elementPred("tr")) {
			if i == 0 {
				continue // header row
			}
			tds := findAll(tr, elementPred("td"))
			if len(tds) < 2 {
				continue
			}
			name := textContent(tds[0])
			if name == "" {
				continue
			}
			attacks = append(attacks, domain.Attack{
				Name:        name,
				Description: textContent(tds[len(tds)-1]),
			})
		}
	}
	if len(attacks) > 0 {
		return attacks
	}

	heading := findFirst(doc, func(n *html.Node) bool {
		return (isElement(n, "h2") || isElement(n, "h3")) && attackHeading.MatchString(textContent(n))
	})
	if heading == nil {
		return nil
	}
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if isElement(sib, "ul") || isElement(sib, "ol") {
			for _, li := range findAll(sib, elementPred("li")) {
				if text := textContent(li); text != "" {
					attacks = append(attacks, domain.Attack{Name: text})
				}
			}
			break
		}
	}
	return attacks
}

// --- node helpers ---

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func elementPred(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return isElement(n, tag) }
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findFirst(c, pred); m != nil {
			return m
		}
	}
	return nil
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(whitespace.ReplaceAllString(b.String(), " "))
}
