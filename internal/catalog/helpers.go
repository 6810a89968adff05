// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package catalog

import (
	"strings"

	"github.com/tomtom215/audiencia/internal/models"
)

// AllCategories selects every event in FilterByCategory.
const AllCategories = "Todas las categorías"

// Summarize builds the organizer header from a listed slice. Name and email
// come from the first event; categories keep first-seen order.
func Summarize(organizerID string, events []models.Event) models.OrganizerSummary {
	summary := models.OrganizerSummary{
		OrganizerID: organizerID,
		Categories:  []string{},
		EventCount:  len(events),
	}
	if len(events) == 0 {
		return summary
	}

	summary.OrganizerName = events[0].OrganizerName
	summary.Email = events[0].Email

	seen := make(map[string]struct{}, len(events))
	for i := range events {
		category := events[i].Category
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		summary.Categories = append(summary.Categories, category)
	}
	return summary
}

// FilterByCategory keeps events in category, preserving order.
// An empty category or AllCategories returns events unchanged.
func FilterByCategory(events []models.Event, category string) []models.Event {
	category = strings.TrimSpace(category)
	if category == "" || category == AllCategories {
		return events
	}
	filtered := make([]models.Event, 0, len(events))
	for i := range events {
		if events[i].Category == category {
			filtered = append(filtered, events[i])
		}
	}
	return filtered
}

// Hostnames derives the analytics hostnames of events under domain.
// Events without a subdomain are skipped; duplicates are dropped.
func Hostnames(events []models.Event, domain string) []string {
	hosts := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for i := range events {
		if events[i].Subdomain == "" {
			continue
		}
		host := events[i].Hostname(domain)
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return hosts
}

// SelectByID returns the events whose ids are listed, in catalog order.
// It also returns the requested ids that were not found.
func SelectByID(events []models.Event, ids []string) (selected []models.Event, missing []string) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = false
	}
	selected = make([]models.Event, 0, len(ids))
	for i := range events {
		if _, ok := wanted[events[i].EventID]; ok {
			wanted[events[i].EventID] = true
			selected = append(selected, events[i])
		}
	}
	for _, id := range ids {
		if !wanted[id] {
			missing = append(missing, id)
			wanted[id] = true // report each id once
		}
	}
	return selected, missing
}
