package soap

// SOAPVersion represents the SOAP protocol version.
type SOAPVersion string

const (
	// SOAP11 represents SOAP 1.1 protocol.
	SOAP11 SOAPVersion = "1.1"
	// SOAP12 represents SOAP 1.2 protocol.
	SOAP12 SOAPVersion = "1.2"
)

// SOAP namespace URIs
const (
	SOAP11Namespace = "http://schemas.xmlsoap.org/soap/envelope/"
	SOAP12Namespace = "http://www.w3.org/2003/05/soap-envelope"
)

// ContentTypes for SOAP versions
const (
	SOAP11ContentType = "text/xml; charset=utf-8"
	SOAP12ContentType = "application/soap+xml; charset=utf-8"
)

// Namespace returns the envelope namespace for the version.
func (v SOAPVersion) Namespace() string {
	if v == SOAP12 {
		return SOAP12Namespace
	}
	return SOAP11Namespace
}

// ContentType returns the HTTP content type for the version.
func (v SOAPVersion) ContentType() string {
	if v == SOAP12 {
		return SOAP12ContentType
	}
	return SOAP11ContentType
}

// VersionForNamespace maps an envelope namespace to a version.
func VersionForNamespace(ns string) (SOAPVersion, bool) {
	switch ns {
	case SOAP11Namespace:
		return SOAP11, true
	case SOAP12Namespace:
		return SOAP12, true
	default:
		return "", false
	}
}

// Fault describes a SOAP fault independent of version.
type Fault struct {
	Code    string `json:"code" yaml:"code"`       // soap:Client, soap:Server
	Message string `json:"message" yaml:"message"` // Human readable error
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}
