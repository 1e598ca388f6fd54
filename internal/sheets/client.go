package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
)

const spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// Store is the tabular store contract. Rows are ordered sequences of
// strings; row 0 of every sheet is a header and is never interpreted here.
type Store interface {
	ReadRange(ctx context.Context, spreadsheetID, rangeSpec string) ([][]string, error)
	AppendRow(ctx context.Context, spreadsheetID, rangeSpec string, row []string) error
	UpdateRange(ctx context.Context, spreadsheetID, rangeSpec string, rows [][]string) error
}

// Client talks to the Google Sheets v4 values API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a sheets client authenticated with the configured
// service-account key. With no credentials configured the client is still
// returned, but every call fails with ErrStoreUnavailable so read paths can
// degrade gracefully.
func NewClient(cfg *config.SheetsConfig, log zerolog.Logger) (*Client, error) {
	c := &Client{
		baseURL: cfg.BaseURL,
		log:     log.With().Str("component", "sheets").Logger(),
	}

	if cfg.CredentialsJSON == "" {
		c.log.Warn().Msg("No Google credentials configured, store is unavailable")
		return c, nil
	}

	jwtCfg, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), spreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	c.httpClient = jwtCfg.Client(context.Background())
	c.httpClient.Timeout = cfg.RequestTimeout

	c.log.Info().Msg("Sheets client initialized")
	return c, nil
}

// valueRange mirrors the values API request/response body.
type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// ReadRange fetches all rows in the given A1 range, including the header.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, rangeSpec string) ([][]string, error) {
	if err := c.available(spreadsheetID); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, spreadsheetID, url.PathEscape(rangeSpec))
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("failed to decode values response: %w", err)
	}

	rows := make([][]string, len(vr.Values))
	for i, raw := range vr.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = cellString(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

// AppendRow appends a single row after the last data row of the range.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, rangeSpec string, row []string) error {
	if err := c.available(spreadsheetID); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.baseURL, spreadsheetID, url.PathEscape(rangeSpec))
	_, err := c.do(ctx, http.MethodPost, endpoint, &valueRange{Values: toAnyRows([][]string{row})})
	return err
}

// UpdateRange overwrites the exact cells addressed by the range.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, rangeSpec string, rows [][]string) error {
	if err := c.available(spreadsheetID); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		c.baseURL, spreadsheetID, url.PathEscape(rangeSpec))
	_, err := c.do(ctx, http.MethodPut, endpoint, &valueRange{Range: rangeSpec, Values: toAnyRows(rows)})
	return err
}

func (c *Client) available(spreadsheetID string) error {
	if c.httpClient == nil {
		return fmt.Errorf("%w: google credentials not configured", models.ErrStoreUnavailable)
	}
	if spreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id not configured", models.ErrStoreUnavailable)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload *valueRange) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Msg("Sheets API returned an error")
		return nil, fmt.Errorf("sheets API error: status %d", resp.StatusCode)
	}

	return body, nil
}

// cellString normalizes a JSON cell value. The values API returns formatted
// strings, but unformatted numeric cells decode as float64.
func cellString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func toAnyRows(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		out[i] = cells
	}
	return out
}
