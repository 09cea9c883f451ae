// Package httputil provides shared HTTP utilities for writing SOAP responses.
package httputil

import (
	"net/http"

	"github.com/getmockd/wsconfig/pkg/soap"
)

// WriteSOAP writes msg with the given status code.
// It sets the Content-Type header for the message's SOAP version.
func WriteSOAP(w http.ResponseWriter, status int, msg *soap.Message) {
	data, err := msg.Bytes()
	if err != nil {
		WriteFault(w, http.StatusInternalServerError, &soap.Fault{Code: "soap:Server", Message: err.Error()}, msg.Version())
		return
	}
	w.Header().Set("Content-Type", msg.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// WriteFault writes a fault envelope for the version with the given status code.
func WriteFault(w http.ResponseWriter, status int, fault *soap.Fault, version soap.SOAPVersion) {
	w.Header().Set("Content-Type", version.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(soap.BuildFault(fault, version))
}

// WriteClientFault writes a 500 fault blaming the sender.
func WriteClientFault(w http.ResponseWriter, version soap.SOAPVersion, message string) {
	WriteFault(w, http.StatusInternalServerError, &soap.Fault{Code: "soap:Client", Message: message}, version)
}

// WriteServerFault writes a 500 fault blaming the receiver.
func WriteServerFault(w http.ResponseWriter, version soap.SOAPVersion, message string) {
	WriteFault(w, http.StatusInternalServerError, &soap.Fault{Code: "soap:Server", Message: message}, version)
}

// WriteBadRequest writes a plain-text 400 response for requests that are
// not SOAP envelopes.
func WriteBadRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

// WriteAccepted writes an empty 202 response acknowledging a one-way message.
func WriteAccepted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusAccepted)
}
