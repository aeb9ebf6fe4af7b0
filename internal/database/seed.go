package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data.
// It creates the default brand profile if none exists, so the studio is
// usable before onboarding has run.
func Seed(db *sql.DB) error {
	// Check if a brand exists already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM brands").Scan(&count); err != nil {
		return fmt.Errorf("seed check brands: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO brands (name, description, colors, tone_of_voice, niche, target_audience)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, "SU Controle", "Gestão financeira simplificada.",
		`["#ff6e40","#1a1a2e","#f0f0f0"]`,
		"Próximo, direto e encorajador", "Finanças Pessoais",
		"Pessoas que querem organizar o próprio dinheiro")
	if err != nil {
		return fmt.Errorf("seed insert brand: %w", err)
	}

	slog.Info("database seeded with default brand", "brand", "SU Controle")
	return nil
}
