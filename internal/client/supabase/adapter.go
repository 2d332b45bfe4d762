package supabaseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
)

// Adapter talks to the Supabase PostgREST API with the service key.
type Adapter struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewAdapter(baseURL, serviceKey string, httpClient *http.Client) *Adapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Adapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       httpClient,
	}
}

func (a *Adapter) BaseURL() string { return a.baseURL }
func (a *Adapter) APIKey() string  { return a.serviceKey }

func (a *Adapter) Select(ctx context.Context, q dto.SelectQuery) (dto.SelectResult, error) {
	var out dto.SelectResult

	params := url.Values{}
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}
	params.Set("select", columns)
	addEq(params, q.Eq)
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	headers := http.Header{}
	if q.From != nil && q.To != nil {
		headers.Set("Range-Unit", "items")
		headers.Set("Range", fmt.Sprintf("%d-%d", *q.From, *q.To))
	}
	if q.Count {
		headers.Set("Prefer", "count=exact")
	}

	resp, err := a.do(ctx, http.MethodGet, q.Table, params, headers, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out.Rows); err != nil {
		return out, errs.NewExternalServiceError("supabase", "invalid response from supabase", false, err)
	}
	out.Count = len(out.Rows)
	if q.Count {
		if total, ok := parseContentRange(resp.Header.Get("Content-Range")); ok {
			out.Count = total
		}
	}
	return out, nil
}

func (a *Adapter) Insert(ctx context.Context, table string, rows any) error {
	headers := http.Header{"Prefer": []string{"return=minimal"}}
	resp, err := a.do(ctx, http.MethodPost, table, nil, headers, rows)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (a *Adapter) Update(ctx context.Context, table string, eq map[string]string, values any) error {
	params := url.Values{}
	addEq(params, eq)
	headers := http.Header{"Prefer": []string{"return=minimal"}}
	resp, err := a.do(ctx, http.MethodPatch, table, params, headers, values)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (a *Adapter) Delete(ctx context.Context, table string, eq map[string]string) error {
	params := url.Values{}
	addEq(params, eq)
	resp, err := a.do(ctx, http.MethodDelete, table, params, nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (a *Adapter) do(ctx context.Context, method, table string, params url.Values, headers http.Header, body any) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", a.baseURL, url.PathEscape(table))
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errs.NewValidationError("request body could not be encoded")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errs.NewExternalServiceError("supabase", "failed to build supabase request", false, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("apikey", a.serviceKey)
	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError("supabase", "supabase request failed", true, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errs.NewExternalServiceError("supabase",
			fmt.Sprintf("supabase %s %s returned %d", method, table, resp.StatusCode),
			resp.StatusCode >= 500,
			fmt.Errorf("%s", strings.TrimSpace(string(detail))))
	}
	return resp, nil
}

func addEq(params url.Values, eq map[string]string) {
	for col, v := range eq {
		params.Set(col, "eq."+v)
	}
}

// parseContentRange reads the total from a PostgREST "0-9/42" or "*/0" header.
func parseContentRange(h string) (int, bool) {
	i := strings.LastIndex(h, "/")
	if i < 0 || h[i+1:] == "*" {
		return 0, false
	}
	n, err := strconv.Atoi(h[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
