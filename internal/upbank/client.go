// Package upbank provides an HTTP client for the local Up Bank
// transaction export service.
package upbank

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendboard/internal/models"
)

const (
	csvEndpoint     = "/api/v1/transactions/csv"
	maxTransactions = 10000
)

// transactionTypes is the allow-list of type codes requested from the
// service. EFTPOS Deposit is included because BeemIt transfers settle as
// EFTPOS transactions.
var transactionTypes = []string{"Payment", "Purchase", "Refund", "EFTPOS Deposit"}

// Client communicates with the transaction export service.
type Client struct {
	baseURL    string
	accountID  string
	httpClient *http.Client
}

// NewClient creates a transaction service client.
func NewClient(baseURL, accountID string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  accountID,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured service URL, used in user-facing
// failure messages.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchTransactions fetches the transactions created between start and end
// (midnight UTC bounds, inclusive semantics owned by the service) and
// normalises them: amounts are negated so expenses are positive, the bank
// category and raw text are kept as display fields, and the description
// becomes the shop name.
func (c *Client) FetchTransactions(ctx context.Context, start, end time.Time) ([]models.ImportedTransaction, error) {
	params := url.Values{}
	params.Set("startDate", start.Format("2006-01-02")+"T00:00:00.000Z")
	params.Set("endDate", end.Format("2006-01-02")+"T00:00:00.000Z")
	params.Set("numTransactions", fmt.Sprintf("%d", maxTransactions))
	params.Set("accountId", c.accountID)
	for _, t := range transactionTypes {
		params.Add("transactionTypes", t)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+csvEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching transactions: unexpected status %d", resp.StatusCode)
	}

	return parseCSV(resp.Body)
}

// parseCSV decodes the service's CSV payload by header name, so column
// order and the service's unused filler columns do not matter.
func parseCSV(r io.Reader) ([]models.ImportedTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"transactionId", "Cost", "createdAt"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV response missing %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var transactions []models.ImportedTransaction
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		cost, err := decimal.NewFromString(field(row, "Cost"))
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", field(row, "Cost"), err)
		}

		transactions = append(transactions, models.ImportedTransaction{
			TransactionID:  field(row, "transactionId"),
			Cost:           cost.Neg(),
			Shop:           field(row, "description"),
			UpbankText:     field(row, "rawText"),
			UpbankCategory: field(row, "Category"),
			Date:           parseCreatedAt(field(row, "createdAt")),
		})
	}
	return transactions, nil
}

// parseCreatedAt parses the service's creation timestamps. Unparseable
// values degrade to the zero time rather than dropping the transaction.
func parseCreatedAt(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
