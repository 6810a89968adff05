// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import "strings"

// Selection is an ordered, de-duplicated set of event hostnames.
// Hostnames are trimmed and lower-cased; empty entries are dropped and
// comma-separated entries are split.
type Selection struct {
	hosts []string
}

// NewSelection builds a Selection keeping the first occurrence of each host.
func NewSelection(hostnames ...string) Selection {
	hosts := make([]string, 0, len(hostnames))
	seen := make(map[string]struct{}, len(hostnames))
	for _, entry := range hostnames {
		for _, h := range strings.Split(entry, ",") {
			h = strings.ToLower(strings.TrimSpace(h))
			if h == "" {
				continue
			}
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			hosts = append(hosts, h)
		}
	}
	return Selection{hosts: hosts}
}

// Hostnames returns a copy of the selected hostnames in selection order.
func (s Selection) Hostnames() []string {
	out := make([]string, len(s.hosts))
	copy(out, s.hosts)
	return out
}

// Len returns the number of hostnames.
func (s Selection) Len() int { return len(s.hosts) }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return len(s.hosts) == 0 }
