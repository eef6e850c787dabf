// Package client talks to the dealboard REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

var (
	ErrInvalid  = errors.New("invalid request")
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// StatusError is a non-2xx answer. It unwraps to the sentinel matching its
// status code, so callers can use errors.Is with ErrNotFound,
// deal.ErrNeedsValuation and the rest.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, http.StatusText(e.Code), e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusBadRequest:
		return ErrInvalid
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return deal.ErrNeedsValuation
	}

	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// send executes req and turns error statuses into a *StatusError. The caller
// closes the body of a successful response.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()

		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	return resp, nil
}

func (c *Client) ListDeals(ctx context.Context) ([]api.Deal, error) {
	var out []api.Deal
	err := c.do(ctx, http.MethodGet, "/deals", nil, &out)

	return out, err
}

func (c *Client) GetDeal(ctx context.Context, id uuid.UUID) (*api.Deal, error) {
	var out api.Deal
	if err := c.do(ctx, http.MethodGet, "/deals/"+id.String(), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateDeal(ctx context.Context, req api.CreateDealRequest) (*api.Deal, error) {
	var out api.Deal
	if err := c.do(ctx, http.MethodPost, "/deals", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MoveStage asks the server to move a deal. A guard rejection unwraps to
// deal.ErrNeedsValuation.
func (c *Client) MoveStage(ctx context.Context, id uuid.UUID, stage deal.Stage) (*api.Deal, error) {
	var out api.Deal
	if err := c.do(ctx, http.MethodPatch, "/deals/"+id.String()+"/stage", api.MoveStageRequest{Stage: stage}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SaveDealNotes(ctx context.Context, id uuid.UUID, notes string) (*api.Deal, error) {
	var out api.Deal
	if err := c.do(ctx, http.MethodPatch, "/deals/"+id.String()+"/notes", api.NotesRequest{Notes: notes}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListDocuments(ctx context.Context, entityID uuid.UUID) ([]api.Document, error) {
	var out []api.Document
	err := c.do(ctx, http.MethodGet, "/documents?entityId="+url.QueryEscape(entityID.String()), nil, &out)

	return out, err
}

func (c *Client) PinnedDocuments(ctx context.Context, dealID uuid.UUID) (*api.PinnedDocuments, error) {
	var out api.PinnedDocuments
	if err := c.do(ctx, http.MethodGet, "/deals/"+dealID.String()+"/pinned-documents", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) StageChecklist(ctx context.Context, dealID uuid.UUID) ([]api.ChecklistItem, error) {
	var out []api.ChecklistItem
	err := c.do(ctx, http.MethodGet, "/deals/"+dealID.String()+"/stage-checklist", nil, &out)

	return out, err
}

func (c *Client) ToggleStageItem(ctx context.Context, dealID uuid.UUID, key string) ([]api.ChecklistItem, error) {
	var out []api.ChecklistItem
	path := "/deals/" + dealID.String() + "/stage-checklist/items/" + url.PathEscape(key) + "/toggle"
	err := c.do(ctx, http.MethodPost, path, nil, &out)

	return out, err
}

func (c *Client) AddStageItem(ctx context.Context, dealID uuid.UUID, label string) ([]api.ChecklistItem, error) {
	var out []api.ChecklistItem
	path := "/deals/" + dealID.String() + "/stage-checklist/items"
	err := c.do(ctx, http.MethodPost, path, api.AddChecklistItemRequest{Label: label}, &out)

	return out, err
}

func (c *Client) Buyers(ctx context.Context, dealID uuid.UUID) ([]api.BuyerRow, error) {
	var out []api.BuyerRow
	err := c.do(ctx, http.MethodGet, "/deals/"+dealID.String()+"/buyers", nil, &out)

	return out, err
}

func (c *Client) ListParties(ctx context.Context) ([]api.Party, error) {
	var out []api.Party
	err := c.do(ctx, http.MethodGet, "/buying-parties", nil, &out)

	return out, err
}

func (c *Client) GetParty(ctx context.Context, id uuid.UUID) (*api.Party, error) {
	var out api.Party
	if err := c.do(ctx, http.MethodGet, "/buying-parties/"+id.String(), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SavePartyNotes(ctx context.Context, id uuid.UUID, notes string) (*api.Party, error) {
	var out api.Party
	if err := c.do(ctx, http.MethodPatch, "/buying-parties/"+id.String()+"/notes", api.NotesRequest{Notes: notes}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*api.Summary, error) {
	var out api.Summary
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Import uploads a spreadsheet export in the given format.
func (c *Client) Import(ctx context.Context, format, filename string, r io.Reader) (*api.ImportResult, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("format", format); err != nil {
		return nil, err
	}

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out api.ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}

// ExportDeal streams the deal's data-room archive into w and returns the
// file name the server suggested.
func (c *Client) ExportDeal(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/deals/"+id.String()+"/export", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}

	name := "dataroom.zip"

	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}

	return name, nil
}
