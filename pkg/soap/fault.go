package soap

import (
	"bytes"
	"strings"
)

// BuildFault renders a complete fault envelope for the version.
// Fault codes are translated between versions:
//   - soap:Client -> soap:Sender (SOAP 1.2)
//   - soap:Server -> soap:Receiver (SOAP 1.2)
func BuildFault(fault *Fault, version SOAPVersion) []byte {
	if version == SOAP12 {
		return buildFault12(fault)
	}
	return buildFault11(fault)
}

// buildFault11 builds a SOAP 1.1 fault envelope.
func buildFault11(fault *Fault) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + SOAP11Namespace + `">`)
	buf.WriteString(`<soap:Body>`)
	buf.WriteString(`<soap:Fault>`)
	buf.WriteString(`<faultcode>` + escapeXML(fault.Code) + `</faultcode>`)
	buf.WriteString(`<faultstring>` + escapeXML(fault.Message) + `</faultstring>`)
	if fault.Detail != "" {
		buf.WriteString(`<detail>` + fault.Detail + `</detail>`)
	}
	buf.WriteString(`</soap:Fault>`)
	buf.WriteString(`</soap:Body>`)
	buf.WriteString(`</soap:Envelope>`)
	return buf.Bytes()
}

// buildFault12 builds a SOAP 1.2 fault envelope.
func buildFault12(fault *Fault) []byte {
	code := fault.Code
	switch code {
	case "soap:Client", "Client":
		code = "soap:Sender"
	case "soap:Server", "Server":
		code = "soap:Receiver"
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + SOAP12Namespace + `">`)
	buf.WriteString(`<soap:Body>`)
	buf.WriteString(`<soap:Fault>`)
	buf.WriteString(`<soap:Code><soap:Value>` + escapeXML(code) + `</soap:Value></soap:Code>`)
	buf.WriteString(`<soap:Reason><soap:Text xml:lang="en">` + escapeXML(fault.Message) + `</soap:Text></soap:Reason>`)
	if fault.Detail != "" {
		buf.WriteString(`<soap:Detail>` + fault.Detail + `</soap:Detail>`)
	}
	buf.WriteString(`</soap:Fault>`)
	buf.WriteString(`</soap:Body>`)
	buf.WriteString(`</soap:Envelope>`)
	return buf.Bytes()
}

// escapeXML escapes special XML characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
