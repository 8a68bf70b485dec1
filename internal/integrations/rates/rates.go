// Package rates reads the central bank key rate from its SOAP web service.
package rates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// cacheTTL bounds how often the upstream service is called
const cacheTTL = time.Hour

// Client handles integration with the central bank key-rate service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time

	mu        sync.Mutex
	rate      decimal.Decimal
	fetchedAt time.Time
}

// NewClient initializes a new key-rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// buildSOAPRequest asks for the key rates of the last 30 days
func (c *Client) buildSOAPRequest() string {
	now := c.now()
	fromDate := now.AddDate(0, 0, -30).Format("2006-01-02")
	toDate := now.Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

func (c *Client) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Key rate XML response: %s", string(body))
	return body, nil
}

// parseKeyRate returns the most recent rate in the response
func parseKeyRate(rawBody []byte) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse XML: %w", err)
	}

	rows := doc.FindElements("//diffgram/KeyRate/KR")
	if len(rows) == 0 {
		return decimal.Zero, fmt.Errorf("no key rate data found in XML")
	}

	var (
		latest   *etree.Element
		latestDT time.Time
	)
	for _, row := range rows {
		dt := row.FindElement("./DT")
		if dt == nil {
			continue
		}
		at, err := time.Parse(time.RFC3339, dt.Text())
		if err != nil {
			continue
		}
		if latest == nil || at.After(latestDT) {
			latest, latestDT = row, at
		}
	}
	if latest == nil {
		latest = rows[0]
	}

	rateElement := latest.FindElement("./Rate")
	if rateElement == nil {
		return decimal.Zero, fmt.Errorf("rate element not found in XML")
	}
	rate, err := decimal.NewFromString(rateElement.Text())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse rate %q: %w", rateElement.Text(), err)
	}
	return rate, nil
}

// KeyRate returns the current key rate as an annual percentage. Results are
// cached for an hour.
func (c *Client) KeyRate(ctx context.Context) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < cacheTTL {
		return c.rate, nil
	}

	body, err := c.sendRequest(ctx, c.buildSOAPRequest())
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := parseKeyRate(body)
	if err != nil {
		return decimal.Zero, err
	}

	c.rate, c.fetchedAt = rate, c.now()
	c.log.Infof("Retrieved key rate: %s%%", rate)
	return rate, nil
}
