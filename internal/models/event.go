// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package models

import (
	"strings"
	"time"
)

// DefaultHostDomain is the public domain event subdomains are served under.
const DefaultHostDomain = "example.com"

// Event represents one active event from the metadata store.
//
// StartedAt is truncated to a calendar date (midnight UTC); the catalog only
// exposes the day an event starts, not the time.
type Event struct {
	EventID       string `json:"event_id"`
	OrganizerID   string `json:"organizer_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Subdomain     string `json:"subdomain"`
	OrganizerName string `json:"organizer_name"`
	Email         string `json:"email"`
	StartedAt     Date   `json:"started_at"`
}

// Hostname returns the public hostname of the event's landing site.
// An empty domain falls back to DefaultHostDomain.
func (e *Event) Hostname(domain string) string {
	domain = strings.TrimPrefix(strings.TrimSpace(domain), ".")
	if domain == "" {
		domain = DefaultHostDomain
	}
	return e.Subdomain + "." + domain
}

// Date is a calendar date that renders as YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

// dateLayout is the wire format for Date.
const dateLayout = "2006-01-02"

// NewDate truncates t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String returns the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON renders the date as a JSON string, or null for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses a YYYY-MM-DD string. null and "" yield the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}
