package postal

import "encoding/xml"

// AuthorizationHeader carries the consuming system's credentials in the SOAP header.
type AuthorizationHeader struct {
	Login    string
	Password string
	// MustUnderstand asks SOAP intermediaries to reject the message if they cannot process the header.
	MustUnderstand bool
}

func (h AuthorizationHeader) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "AuthorizationHeader"}
	if h.MustUnderstand {
		// the soapenv prefix is declared on the envelope
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "soapenv:mustUnderstand"}, Value: "1"})
	}

	body := struct {
		Login    string `xml:"login"`
		Password string `xml:"password"`
	}{h.Login, h.Password}

	return e.EncodeElement(body, start)
}
