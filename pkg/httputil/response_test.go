package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wsconfig/pkg/soap"
)

func TestWriteSOAP(t *testing.T) {
	t.Parallel()

	t.Run("writes envelope with version content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		msg := soap.NewMessage(soap.SOAP12)
		msg.SetPayload(etree.NewElement("Ack"))

		WriteSOAP(rec, http.StatusOK, msg)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, soap.SOAP12ContentType, rec.Header().Get("Content-Type"))

		parsed, err := soap.ParseMessage(rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, soap.SOAP12, parsed.Version())
		assert.Equal(t, "Ack", parsed.Payload().Tag)
	})

	t.Run("sets custom status codes", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteSOAP(rec, http.StatusCreated, soap.NewMessage(soap.SOAP11))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, soap.SOAP11ContentType, rec.Header().Get("Content-Type"))
	})
}

func TestWriteFault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		version  soap.SOAPVersion
		wantCode string
		wantMsg  string
	}{
		{
			name:     "client fault 1.1",
			write:    func(w http.ResponseWriter) { WriteClientFault(w, soap.SOAP11, "bad order") },
			version:  soap.SOAP11,
			wantCode: "soap:Client",
			wantMsg:  "bad order",
		},
		{
			name:     "server fault 1.1",
			write:    func(w http.ResponseWriter) { WriteServerFault(w, soap.SOAP11, "backend down") },
			version:  soap.SOAP11,
			wantCode: "soap:Server",
			wantMsg:  "backend down",
		},
		{
			name:     "client fault 1.2 maps to Sender",
			write:    func(w http.ResponseWriter) { WriteClientFault(w, soap.SOAP12, "bad order") },
			version:  soap.SOAP12,
			wantCode: "soap:Sender",
			wantMsg:  "bad order",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()

			tt.write(rec)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.version.ContentType(), rec.Header().Get("Content-Type"))

			msg, err := soap.ParseMessage(rec.Body.Bytes())
			require.NoError(t, err)
			require.True(t, msg.IsFault())
			assert.Equal(t, tt.wantCode, msg.Fault().Code)
			assert.Equal(t, tt.wantMsg, msg.Fault().Message)
		})
	}
}

func TestWriteBadRequest(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteBadRequest(rec, "not a SOAP envelope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a SOAP envelope")
}

func TestWriteAccepted(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteAccepted(rec)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
