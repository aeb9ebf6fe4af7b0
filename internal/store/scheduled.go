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

// ScheduledPostStore persists the posting calendar: at most one post per
// date, moving monotonically through suggested, draft, ready, posted.
type ScheduledPostStore struct {
	db *sql.DB
}

// NewScheduledPostStore creates a ScheduledPostStore.
func NewScheduledPostStore(db *sql.DB) *ScheduledPostStore {
	return &ScheduledPostStore{db: db}
}

const scheduledColumns = `id, scheduled_date::text, topic, platform, content_type,
       caption, hashtags, image_assets, carousel_style, status, posted_at,
       created_at, updated_at`

func scanScheduled(scan func(...any) error) (*models.ScheduledPost, error) {
	p := &models.ScheduledPost{}
	var hashtags, assets []byte
	err := scan(
		&p.ID, &p.Date, &p.Topic, &p.Platform, &p.ContentType,
		&p.Caption, &hashtags, &assets, &p.Style, &p.Status, &p.PostedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	scanStrings(hashtags, &p.Hashtags)
	scanStrings(assets, &p.ImageAssets)
	return p, nil
}

// ByDateRange returns all posts with scheduled dates in [from, to],
// both YYYY-MM-DD, ordered by date.
func (s *ScheduledPostStore) ByDateRange(ctx context.Context, from, to string) ([]models.ScheduledPost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+scheduledColumns+`
		FROM scheduled_posts
		WHERE scheduled_date BETWEEN $1 AND $2
		ORDER BY scheduled_date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list scheduled posts: %w", err)
	}
	defer rows.Close()

	var posts []models.ScheduledPost
	for rows.Next() {
		p, err := scanScheduled(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ByDate returns the post scheduled for the given date, or nil.
func (s *ScheduledPostStore) ByDate(ctx context.Context, date string) (*models.ScheduledPost, error) {
	p, err := scanScheduled(s.db.QueryRowContext(ctx, `
		SELECT `+scheduledColumns+`
		FROM scheduled_posts WHERE scheduled_date = $1
	`, date).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find scheduled post: %w", err)
	}
	return p, nil
}

// FindByID returns a post by its UUID, or nil.
func (s *ScheduledPostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error) {
	p, err := scanScheduled(s.db.QueryRowContext(ctx, `
		SELECT `+scheduledColumns+`
		FROM scheduled_posts WHERE id = $1
	`, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find scheduled post: %w", err)
	}
	return p, nil
}

// Create inserts a new scheduled post and returns it with generated fields.
// The per-date uniqueness constraint rejects a second post on the same day.
func (s *ScheduledPostStore) Create(ctx context.Context, p *models.ScheduledPost) (*models.ScheduledPost, error) {
	created, err := scanScheduled(s.db.QueryRowContext(ctx, `
		INSERT INTO scheduled_posts (scheduled_date, topic, platform, content_type,
		                             caption, hashtags, image_assets, carousel_style, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+scheduledColumns+`
	`, p.Date, p.Topic, p.Platform, p.ContentType, p.Caption,
		jsonStrings(p.Hashtags), jsonStrings(p.ImageAssets), p.Style, p.Status).Scan)
	if err != nil {
		return nil, fmt.Errorf("create scheduled post: %w", err)
	}
	return created, nil
}

// Update rewrites a post's content fields. Status changes go through here
// too, but never onto a posted row: the guard keeps posted terminal.
func (s *ScheduledPostStore) Update(ctx context.Context, p *models.ScheduledPost) (*models.ScheduledPost, error) {
	updated, err := scanScheduled(s.db.QueryRowContext(ctx, `
		UPDATE scheduled_posts SET
			topic = $1, platform = $2, content_type = $3, caption = $4,
			hashtags = $5, image_assets = $6, carousel_style = $7,
			status = $8, updated_at = NOW()
		WHERE id = $9 AND status != 'posted'
		RETURNING `+scheduledColumns+`
	`, p.Topic, p.Platform, p.ContentType, p.Caption,
		jsonStrings(p.Hashtags), jsonStrings(p.ImageAssets), p.Style,
		p.Status, p.ID).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update scheduled post: %s is posted or missing", p.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update scheduled post: %w", err)
	}
	return updated, nil
}

// MarkPosted transitions a post to posted. Idempotent: repeating the call
// leaves the original posted_at untouched and reports no error.
func (s *ScheduledPostStore) MarkPosted(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE scheduled_posts
		SET status = 'posted', posted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status != 'posted'
	`, id)
	if err != nil {
		return nil, fmt.Errorf("mark posted: %w", err)
	}

	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("mark posted: no scheduled post %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 && p.Status != models.PostStatusPosted {
		return nil, fmt.Errorf("mark posted: %s not transitioned", id)
	}
	return p, nil
}

// Delete removes a scheduled post, returning its date to empty.
func (s *ScheduledPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scheduled_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scheduled post: %w", err)
	}
	return nil
}
