// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/json"
	"log/slog"

	"sustudio/internal/models"
)

// weeklyPlanLen is the fixed entry count: one suggestion per weekday.
const weeklyPlanLen = 5

// GenerateWeeklyPlan produces five Monday-to-Friday topic suggestions for
// the brand. Like the carousel, the plan is never an error: a malformed or
// failed generation yields the deterministic default plan.
func (s *Studio) GenerateWeeklyPlan(ctx context.Context, brand *models.BrandProfile) []models.WeeklyPlanEntry {
	text, err := s.generateStructured(ctx, brand, weeklyPlanFallbackSystem, weeklyPlanPrompt(brand))
	if err != nil {
		slog.Warn("weekly plan generation failed, using default", "error", err)
		s.metrics.FailureDefaults.Add(1)
		return defaultWeeklyPlan()
	}

	var plan []models.WeeklyPlanEntry
	if err := json.Unmarshal([]byte(extractArray(repairJSON(text))), &plan); err != nil {
		slog.Warn("weekly plan response malformed, using default", "error", err)
		s.metrics.ParseDefaults.Add(1)
		return defaultWeeklyPlan()
	}
	if !s.planValid(plan) {
		slog.Warn("weekly plan response out of shape, using default")
		s.metrics.ParseDefaults.Add(1)
		return defaultWeeklyPlan()
	}
	return plan
}

func (s *Studio) planValid(plan []models.WeeklyPlanEntry) bool {
	if len(plan) != weeklyPlanLen {
		return false
	}
	for _, entry := range plan {
		if err := s.validate.Struct(&entry); err != nil {
			return false
		}
	}
	return true
}

// defaultWeeklyPlan is the fixed fallback content plan.
func defaultWeeklyPlan() []models.WeeklyPlanEntry {
	return []models.WeeklyPlanEntry{
		{Day: "Segunda", Topic: "Como economizar no mercado", Type: "CAROUSEL"},
		{Day: "Terça", Topic: "3 erros que te deixam no vermelho", Type: "CAROUSEL"},
		{Day: "Quarta", Topic: "Organize suas contas em 5 minutos", Type: "CAROUSEL"},
		{Day: "Quinta", Topic: "Mitos sobre cartão de crédito", Type: "CAROUSEL"},
		{Day: "Sexta", Topic: "Desafio: guarde R$20 hoje", Type: "CAROUSEL"},
	}
}
