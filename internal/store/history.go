// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sustudio/internal/models"
)

// snippetCaptionLen caps how much of a caption makes it into the
// anti-repetition context handed back to the generators.
const snippetCaptionLen = 80

// HistoryStore persists generation history records.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a HistoryStore with the given database connection.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

const historyColumns = `id, topic, platform, content_type, caption, hashtags,
       image_prompt, is_favorite, created_at`

// Insert stores a new history record and fills in its generated fields.
func (s *HistoryStore) Insert(ctx context.Context, item *models.HistoryItem) error {
	var hashtags []byte
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (topic, platform, content_type, caption, hashtags, image_prompt)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+historyColumns+`
	`, item.Topic, item.Platform, item.ContentType, item.Caption,
		jsonStrings(item.Hashtags), item.ImagePrompt,
	).Scan(
		&item.ID, &item.Topic, &item.Platform, &item.ContentType,
		&item.Caption, &hashtags, &item.ImagePrompt, &item.IsFavorite,
		&item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	scanStrings(hashtags, &item.Hashtags)
	return nil
}

// List returns the newest history records, up to limit.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]models.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		var item models.HistoryItem
		var hashtags []byte
		if err := rows.Scan(
			&item.ID, &item.Topic, &item.Platform, &item.ContentType,
			&item.Caption, &hashtags, &item.ImagePrompt, &item.IsFavorite,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		scanStrings(hashtags, &item.Hashtags)
		items = append(items, item)
	}
	return items, rows.Err()
}

// RecentSnippets returns one-line summaries of the newest records, used as
// anti-repetition context for the caption generator.
func (s *HistoryStore) RecentSnippets(ctx context.Context, limit int) ([]string, error) {
	items, err := s.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	snippets := make([]string, 0, len(items))
	for _, item := range items {
		snippets = append(snippets, formatSnippet(item.Topic, item.Caption))
	}
	return snippets, nil
}

// formatSnippet renders one history record as generator context.
func formatSnippet(topic, caption string) string {
	runes := []rune(caption)
	if len(runes) > snippetCaptionLen {
		caption = string(runes[:snippetCaptionLen]) + "..."
	}
	return fmt.Sprintf("Tema: %s -> Conteúdo: %s", topic, caption)
}

// ToggleFavorite flips the favorite flag of a record.
func (s *HistoryStore) ToggleFavorite(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET is_favorite = NOT is_favorite WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("toggle favorite: no record %s", id)
	}
	return nil
}

// Delete removes a history record by ID.
func (s *HistoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}
