package rates

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const response = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:msdata="urn:schemas-microsoft-com:xml-msdata" xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR diffgr:id="KR1" msdata:rowOrder="0">
              <DT>2025-02-10T00:00:00+03:00</DT>
              <Rate>21.00</Rate>
            </KR>
            <KR diffgr:id="KR2" msdata:rowOrder="1">
              <DT>2025-02-14T00:00:00+03:00</DT>
              <Rate>20.50</Rate>
            </KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{RatesURL: url}, log)
}

func TestKeyRate(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://web.cbr.ru/KeyRate", r.Header.Get("SOAPAction"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "<fromDate>2025-01-15</fromDate>")
		_, _ = w.Write([]byte(response))
	}))
	defer srv.Close()

	now := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	c := newClient(srv.URL)
	c.now = func() time.Time { return now }

	rate, err := c.KeyRate(context.Background())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("20.5")), rate.String())

	_, err = c.KeyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Hour)
	_, err = c.KeyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestKeyRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "not xml", status: http.StatusOK, body: "{}"},
		{name: "no rows", status: http.StatusOK, body: "<Envelope><Body/></Envelope>"},
		{name: "bad rate", status: http.StatusOK, body: "<diffgram><KeyRate><KR><Rate>n/a</Rate></KR></KeyRate></diffgram>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newClient(srv.URL).KeyRate(context.Background())
			assert.Error(t, err)
		})
	}
}
