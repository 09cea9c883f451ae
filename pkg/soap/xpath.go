package soap

import (
	"strings"

	"github.com/beevik/etree"
)

// finder is implemented by both *etree.Document and *etree.Element.
type finder interface {
	FindElementPath(path etree.Path) *etree.Element
}

// find evaluates path against root; an invalid path matches nothing.
func find(root finder, path string) *etree.Element {
	if path == "" {
		return nil
	}
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil
	}
	return root.FindElementPath(p)
}

// ExtractXPath returns the trimmed text at path in doc, or the attribute
// value when path ends in /@name. Returns an empty string if nothing matches.
//
// Supported syntax is etree's path language:
//   - /Envelope/Body/GetUser/id - absolute path
//   - //id - find anywhere in document
//   - //MessageID/@mustUnderstand - attribute value
//   - //item[1] - indexed access (1-based)
func ExtractXPath(doc *etree.Document, xpath string) string {
	if doc == nil || xpath == "" {
		return ""
	}
	return valueAt(doc, nil, xpath)
}

// ExtractXPathFromElement is ExtractXPath relative to elem. A path of "." or
// "./@attr" addresses elem itself.
func ExtractXPathFromElement(elem *etree.Element, xpath string) string {
	if elem == nil || xpath == "" {
		return ""
	}
	if xpath == "." {
		return strings.TrimSpace(elem.Text())
	}
	return valueAt(elem, elem, strings.TrimPrefix(xpath, "./"))
}

// MatchXPath reports whether every path in conditions extracts its expected
// value. An empty condition set always matches.
func MatchXPath(doc *etree.Document, conditions map[string]string) bool {
	for xpath, expected := range conditions {
		if ExtractXPath(doc, xpath) != expected {
			return false
		}
	}
	return true
}

// XPath evaluates ExtractXPath against the message document.
func (m *Message) XPath(xpath string) string {
	return ExtractXPath(m.doc, xpath)
}

func valueAt(root finder, self *etree.Element, xpath string) string {
	if e := find(root, xpath); e != nil {
		return strings.TrimSpace(e.Text())
	}

	elemPath, attrName, ok := strings.Cut(xpath, "/@")
	if !ok {
		if self != nil && strings.HasPrefix(xpath, "@") {
			return attrValue(self, xpath[1:])
		}
		return ""
	}
	if (elemPath == "" || elemPath == ".") && self != nil {
		return attrValue(self, attrName)
	}
	return attrValue(find(root, elemPath), attrName)
}

func attrValue(e *etree.Element, name string) string {
	if e == nil {
		return ""
	}
	if a := e.SelectAttr(name); a != nil {
		return a.Value
	}
	return ""
}
