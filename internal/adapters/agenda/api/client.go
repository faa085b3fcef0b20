package api

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

	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

// Client talks to the agenda backend over HTTP. Instants cross the wire as
// ISO-8601 strings.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.AgendaService = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type slotPayload struct {
	ID             string `json:"id"`
	EventID        string `json:"eventId"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Activity       string `json:"activity"`
	PersonInCharge string `json:"personincharge"`
	Remarks        string `json:"remarks,omitempty"`
	ActualEndTime  string `json:"actualEndTime,omitempty"`
}

type endSessionPayload struct {
	ActualEndTime string `json:"actualEndTime"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (c *Client) ListSlots(ctx context.Context, eventID domain.EventID, day int) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("eventId", string(eventID))
	query.Set("day", strconv.Itoa(day))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/agenda?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build agenda list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAgendaUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp, "agenda list")
	}

	var payload []slotPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode agenda list: %w", err)
	}

	slots := make([]domain.Slot, 0, len(payload))
	for _, entry := range payload {
		slot, err := entry.toDomain()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (c *Client) EndSlotSession(ctx context.Context, id domain.SlotID, actualEnd time.Time) (domain.Slot, error) {
	body, err := json.Marshal(endSessionPayload{ActualEndTime: actualEnd.Format(time.RFC3339)})
	if err != nil {
		return domain.Slot{}, fmt.Errorf("encode end session request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/agenda/%s/end", c.baseURL, url.PathEscape(string(id)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("build end session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %v", domain.ErrAgendaUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Slot{}, fmt.Errorf("end session %s: %w", id, domain.ErrSlotNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Slot{}, remoteError(resp, "end session")
	}

	var payload slotPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Slot{}, fmt.Errorf("decode end session response: %w", err)
	}

	return payload.toDomain()
}

func (p slotPayload) toDomain() (domain.Slot, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("slot %s start %q: %w", p.ID, p.Start, domain.ErrInvalidSchedule)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("slot %s end %q: %w", p.ID, p.End, domain.ErrInvalidSchedule)
	}

	slot := domain.Slot{
		ID:             domain.SlotID(p.ID),
		EventID:        domain.EventID(p.EventID),
		ScheduledStart: start,
		ScheduledEnd:   end,
		Activity:       p.Activity,
		PersonInCharge: p.PersonInCharge,
		Remarks:        p.Remarks,
	}

	// An unparseable actual end means the backend holds nothing usable for
	// this core; the slot simply stays scheduled.
	if p.ActualEndTime != "" {
		if actualEnd, err := time.Parse(time.RFC3339, p.ActualEndTime); err == nil {
			slot.ActualEnd = &actualEnd
		}
	}

	return slot, nil
}

// remoteError surfaces the backend's own message when it sent one.
func remoteError(resp *http.Response, operation string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("%w: %s: %s", domain.ErrAgendaUnavailable, operation, payload.Message)
	}

	return fmt.Errorf("%w: %s returned status %d", domain.ErrAgendaUnavailable, operation, resp.StatusCode)
}
