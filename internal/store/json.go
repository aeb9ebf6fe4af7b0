// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer: the singleton
// brand profile, the generation history, the posting calendar, and the
// per-day API usage counters. String lists travel as JSONB columns.
package store

import "encoding/json"

// jsonStrings encodes a string slice for a JSONB column. A nil slice
// encodes as an empty array so columns never hold SQL NULL.
func jsonStrings(s []string) []byte {
	if s == nil {
		s = []string{}
	}
	b, _ := json.Marshal(s)
	return b
}

// scanStrings decodes a JSONB column into a string slice.
func scanStrings(b []byte, dst *[]string) {
	if len(b) == 0 {
		return
	}
	_ = json.Unmarshal(b, dst)
}
