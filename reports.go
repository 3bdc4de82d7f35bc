package errorhandler

import (
	"context"
	"fmt"
	"net/http"
)

// ReportsManager manages report generation.
type ReportsManager struct {
	client *Client
}

// Run starts generating a report.
func (m *ReportsManager) Run(ctx context.Context, req *RunReportRequest) (*Report, error) {
	var resp Report
	err := m.client.do(ctx, http.MethodPost, "/v1/reports", req, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a report by ID.
func (m *ReportsManager) Get(ctx context.Context, id string) (*Report, error) {
	var resp Report
	err := m.client.do(ctx, http.MethodGet, fmt.Sprintf("/v1/reports/%s", id), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
