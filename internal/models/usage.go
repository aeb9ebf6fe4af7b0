// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// UsageResource names the counter a successful provider call increments.
type UsageResource string

const (
	UsageText  UsageResource = "text"
	UsageImage UsageResource = "image"
	UsageVideo UsageResource = "video"
	UsageAudio UsageResource = "audio"
)

// UsageCounters is the per-calendar-day API usage record. Exactly one row
// exists per date, created lazily on the first request of a new day.
// Counters only grow within a day except on explicit reset.
type UsageCounters struct {
	Date          string `json:"date"` // YYYY-MM-DD
	TextRequests  int    `json:"textRequests"`
	ImageRequests int    `json:"imageRequests"`
	VideoRequests int    `json:"videoRequests"`
	AudioRequests int    `json:"audioRequests"`
	TokensUsed    int    `json:"tokensUsed"`
}
