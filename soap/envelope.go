package soap

import (
	"encoding/xml"
	"io"
)

const EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// prefixes declared on every envelope
const (
	envPrefix = "soapenv"
	opPrefix  = "oper"
)

func prefixed(prefix, local string) xml.Name {
	return xml.Name{Local: prefix + ":" + local}
}

// writeEnvelope encodes an RPC-style request: headers in the SOAP header, the
// parameter under its name inside the operation element.
func writeEnvelope(w io.Writer, namespace, op string, headers []any, paramName string, param any) error {
	enc := xml.NewEncoder(w)

	envelope := xml.StartElement{
		Name: prefixed(envPrefix, "Envelope"),
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:" + envPrefix}, Value: EnvelopeNamespace},
			{Name: xml.Name{Local: "xmlns:" + opPrefix}, Value: namespace},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	if err := enc.EncodeToken(envelope); err != nil {
		return err
	}

	if len(headers) > 0 {
		header := xml.StartElement{Name: prefixed(envPrefix, "Header")}
		if err := enc.EncodeToken(header); err != nil {
			return err
		}

		for _, h := range headers {
			if err := enc.Encode(h); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(header.End()); err != nil {
			return err
		}
	}

	body := xml.StartElement{Name: prefixed(envPrefix, "Body")}
	operation := xml.StartElement{Name: prefixed(opPrefix, op)}

	for _, tok := range []xml.Token{body, operation} {
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}

	if param != nil {
		if err := enc.EncodeElement(param, xml.StartElement{Name: xml.Name{Local: paramName}}); err != nil {
			return err
		}
	}

	for _, tok := range []xml.Token{operation.End(), body.End(), envelope.End()} {
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}

	return enc.Flush()
}
