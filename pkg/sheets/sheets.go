// Package sheets is a thin client for the Google Sheets values API, used to
// read the class roster and append help events.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc *gsheets.Service
}

// New builds a client authenticated with a service account key file.
// Extra options are applied after the credentials.
func New(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*Client, error) {
	all := make([]option.ClientOption, 0, len(opts)+2)
	if credentialsFile != "" {
		all = append(all,
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope),
		)
	}
	all = append(all, opts...)

	svc, err := gsheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// AppendRow adds one row after the last non-empty row of sheet.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheet string, values ...string) error {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, sheet, &gsheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", sheet, err)
	}
	return nil
}

// Values reads a range in A1 notation. Cells are formatted as strings.
func (c *Client) Values(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", rng, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		out = append(out, cells)
	}
	return out, nil
}
