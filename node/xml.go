package node

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XML is a node backed by an XML element. Scalars are leaf child elements
// holding text; children are child elements with elements of their own.
type XML struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []*XML `xml:",any"`
}

// NewXML returns an empty element called name.
func NewXML(name string) *XML {
	return &XML{XMLName: xml.Name{Local: name}}
}

// ParseXML parses an XML document into a node tree rooted at the document
// element.
func ParseXML(data []byte) (*XML, error) {
	var x XML
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("parse xml node: %w", err)
	}
	return &x, nil
}

// Marshal encodes the node tree as indented XML.
func (x *XML) Marshal() ([]byte, error) {
	x.trim()
	out, err := xml.MarshalIndent(x, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal xml node: %w", err)
	}
	return out, nil
}

// trim drops the inter-element whitespace kept from parsing so that
// re-indenting does not accumulate it.
func (x *XML) trim() {
	if len(x.Nodes) > 0 && strings.TrimSpace(x.Text) == "" {
		x.Text = ""
	}
	for _, c := range x.Nodes {
		c.trim()
	}
}

func (x *XML) find(name string) *XML {
	for _, c := range x.Nodes {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// Value implements Reader.
func (x *XML) Value(name string) (string, bool) {
	c := x.find(name)
	if c == nil || len(c.Nodes) > 0 {
		return "", false
	}
	return strings.TrimSpace(c.Text), true
}

// Child implements Reader.
func (x *XML) Child(name string) (Reader, bool) {
	c := x.find(name)
	if c == nil {
		return nil, false
	}
	return c, true
}

// SetValue implements Writer.
func (x *XML) SetValue(name, value string) {
	if c := x.find(name); c != nil {
		c.Nodes = nil
		c.Text = value
		return
	}
	x.Nodes = append(x.Nodes, &XML{XMLName: xml.Name{Local: name}, Text: value})
}

// AddChild implements Writer.
func (x *XML) AddChild(name string) Writer {
	if c := x.find(name); c != nil {
		return c
	}
	c := NewXML(name)
	x.Nodes = append(x.Nodes, c)
	return c
}
