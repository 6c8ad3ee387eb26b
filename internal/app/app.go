package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted by Timestamp, tried in order.
// Datetimes without zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is time from the backend. Besides RFC 3339 it accepts
// ISO datetimes without zone offset.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// UnmarshalJSON parses a JSON string in one of timestampLayouts. null leaves ts unchanged.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unknown layout", s)
}

// MarshalJSON encodes ts as RFC 3339.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return ts.Time.MarshalJSON()
}

// ShortenRequest is body of shorten request.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResult is outcome of one shorten request.
type ShortenResult struct {
	Code        string `json:"code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// LinkSummary is one item of the user's links.
type LinkSummary struct {
	Code        string     `json:"code"`
	ShortURL    string     `json:"short_url"`
	OriginalURL string     `json:"original_url"`
	Clicks      int64      `json:"clicks"`
	CreatedAt   Timestamp  `json:"created_at"`
	IsActive    *bool      `json:"is_active,omitempty"`
	ExpiresAt   *Timestamp `json:"expires_at,omitempty"`
}

// LinkListPage is one page of the user's links. Page is 1-based.
type LinkListPage struct {
	Items    []LinkSummary `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
}

// TotalPages returns count of pages, at least 1.
func (p LinkListPage) TotalPages() int {
	return TotalPages(p.Total, p.PageSize)
}

// TotalPages returns ceil(total/pageSize), at least 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// LinkStats is usage stats of a link. Public view has Code and Clicks only.
type LinkStats struct {
	Code        string     `json:"code"`
	Clicks      int64      `json:"clicks"`
	OriginalURL *string    `json:"original_url,omitempty"`
	OwnerID     any        `json:"owner_id,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
	ExpiresAt   *Timestamp `json:"expires_at,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`

	// Extra keeps fields unknown to the client.
	Extra map[string]json.RawMessage `json:"-"`
}

var linkStatsKnownFields = map[string]struct{}{
	"code": {}, "clicks": {}, "original_url": {}, "owner_id": {},
	"created_at": {}, "updated_at": {}, "expires_at": {}, "is_active": {},
}

// UnmarshalJSON decodes stats and keeps unknown fields in Extra.
func (s *LinkStats) UnmarshalJSON(data []byte) error {
	type plain LinkStats
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if _, ok := linkStatsKnownFields[k]; ok {
			continue
		}
		if p.Extra == nil {
			p.Extra = map[string]json.RawMessage{}
		}
		p.Extra[k] = v
	}

	*s = LinkStats(p)
	return nil
}

// IsOwnerView reports whether the backend returned the owner-extended stats.
func (s LinkStats) IsOwnerView() bool {
	return s.OriginalURL != nil
}

// LinkPatch is mutable fields of a link. Nil fields are not sent,
// ClearExpiresAt sends explicit null for expires_at.
type LinkPatch struct {
	IsActive       *bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
}

// MarshalJSON encodes only the fields being changed.
func (p LinkPatch) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if p.IsActive != nil {
		m["is_active"] = *p.IsActive
	}
	switch {
	case p.ClearExpiresAt:
		m["expires_at"] = nil
	case p.ExpiresAt != nil:
		m["expires_at"] = p.ExpiresAt.UTC()
	}
	return json.Marshal(m)
}
