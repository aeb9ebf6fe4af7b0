// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sustudio/internal/models"
)

// maxSiteContent bounds how much fetched page text goes into the analysis
// prompt.
const maxSiteContent = 25000

// IdentityDraft is the analyzer's suggestion for a new brand profile. The
// operator reviews and saves it; nothing is persisted here.
type IdentityDraft struct {
	Name           string   `json:"name"`
	Website        string   `json:"website"`
	Instagram      string   `json:"instagram"`
	Description    string   `json:"description"`
	Colors         []string `json:"colors"`
	ToneOfVoice    string   `json:"toneOfVoice"`
	Niche          string   `json:"niche"`
	TargetAudience string   `json:"targetAudience"`
}

// AnalyzeBrandIdentity fetches the brand's site text and asks the primary
// provider for a profile draft. Analysis runs during first-time setup, so
// it degrades to a deterministic default draft instead of failing.
func (s *Studio) AnalyzeBrandIdentity(ctx context.Context, brand *models.BrandProfile, website, extraLink, instagram string) *IdentityDraft {
	combined := website
	if extraLink != "" {
		combined = website + " | " + extraLink
	}

	client, err := s.primary(brand)
	if err != nil {
		slog.Warn("brand analysis unavailable, using default draft", "error", err)
		s.metrics.FailureDefaults.Add(1)
		return defaultIdentityDraft(combined, instagram)
	}

	site1 := s.fetchPage(ctx, website)
	site2 := s.fetchPage(ctx, extraLink)

	text, err := client.GenerateJSON(ctx, "", identityPrompt(website, extraLink, instagram, site1, site2))
	if err != nil {
		slog.Warn("brand analysis failed, using default draft", "error", err)
		s.metrics.FailureDefaults.Add(1)
		return defaultIdentityDraft(combined, instagram)
	}

	var draft IdentityDraft
	if err := json.Unmarshal([]byte(extractObject(repairJSON(text))), &draft); err != nil || draft.Name == "" {
		slog.Warn("brand analysis response malformed, using default draft")
		s.metrics.ParseDefaults.Add(1)
		return defaultIdentityDraft(combined, instagram)
	}

	draft.Website = combined
	draft.Instagram = instagram
	return &draft
}

// fetchPageText downloads a page and returns up to maxSiteContent bytes of
// its body, empty on any failure. Analysis tolerates unreachable sites.
func fetchPageText(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}
	url := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Debug("site fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSiteContent))
	if err != nil {
		return ""
	}
	return string(body)
}

// defaultIdentityDraft is the fixed fallback profile draft.
func defaultIdentityDraft(website, instagram string) *IdentityDraft {
	return &IdentityDraft{
		Name:           "SU Controle",
		Website:        website,
		Instagram:      instagram,
		Description:    "Gestão financeira simplificada.",
		Colors:         []string{"#ff6e40", "#1a1a2e", "#f0f0f0"},
		ToneOfVoice:    "Simples, acessível, motivador",
		Niche:          "Finanças Pessoais",
		TargetAudience: "Pessoas que querem organizar as contas",
	}
}
