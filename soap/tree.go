package soap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

var ErrNoElement = errors.New("document has no root element")

// DecodeTree decodes an XML document into an untyped tree keyed by the root element's
// local name. Within it an element with children becomes a map[string]any, a leaf
// becomes its text, an element marked xsi:nil becomes nil, and siblings sharing a
// name are collected into a []any in document order. Namespaces and attributes are dropped.
func DecodeTree(r io.Reader) (map[string]any, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoElement
		}

		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		if start, ok := tok.(xml.StartElement); ok {
			v, err := decodeElement(d, start)
			if err != nil {
				return nil, err
			}

			return map[string]any{start.Name.Local: v}, nil
		}
	}
}

func decodeElement(d *xml.Decoder, start xml.StartElement) (any, error) {
	var (
		children map[string]any
		text     strings.Builder
	)

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("decode xml <%s>: %w", start.Name.Local, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeElement(d, t)
			if err != nil {
				return nil, err
			}

			if children == nil {
				children = make(map[string]any)
			}

			appendChild(children, t.Name.Local, v)

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			switch {
			case isNil(start):
				return nil, nil
			case children != nil:
				return children, nil
			default:
				return text.String(), nil
			}
		}
	}
}

func appendChild(children map[string]any, name string, v any) {
	prev, ok := children[name]
	if !ok {
		children[name] = v
		return
	}

	// decoded values are never []any themselves, so a slice is a repetition
	if seq, ok := prev.([]any); ok {
		children[name] = append(seq, v)
		return
	}

	children[name] = []any{prev, v}
}

func isNil(start xml.StartElement) bool {
	for _, a := range start.Attr {
		if a.Name.Local == "nil" && (a.Name.Space == xsiNamespace || a.Name.Space == "xsi") {
			return a.Value == "true" || a.Value == "1"
		}
	}

	return false
}
