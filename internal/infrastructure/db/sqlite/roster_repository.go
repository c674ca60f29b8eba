package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

type RosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Get(ctx context.Context, owner string) (*domain.TeamRoster, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT owner, team, version, updated_at FROM teams WHERE owner = ?`, owner)
	t, err := scanRoster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	return t, nil
}

// Save writes the roster and bumps the owner's version floor in one transaction.
func (r *RosterRepository) Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error) {
	payload, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var prev int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM team_versions WHERE owner = ?`, owner).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read version: %w", err)
	}

	now := time.Now().UTC()
	version := domain.NextVersion(prev, now)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO teams (owner, team, version, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET team = excluded.team, version = excluded.version, updated_at = excluded.updated_at`,
		owner, string(payload), version, now.UnixNano()); err != nil {
		return nil, fmt.Errorf("upsert roster: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO team_versions (owner, version) VALUES (?, ?)
		ON CONFLICT(owner) DO UPDATE SET version = excluded.version`,
		owner, version); err != nil {
		return nil, fmt.Errorf("bump version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit roster: %w", err)
	}

	return &domain.TeamRoster{Owner: owner, Members: members, Version: version, UpdatedAt: now}, nil
}

func (r *RosterRepository) Delete(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return nil
}

func (r *RosterRepository) List(ctx context.Context) (domain.RosterCollection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT owner, team, version, updated_at FROM teams ORDER BY owner`)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	defer rows.Close()

	out := make(domain.RosterCollection)
	for rows.Next() {
		t, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roster: %w", err)
		}
		out[t.Owner] = *t
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoster(s scanner) (*domain.TeamRoster, error) {
	var (
		t       domain.TeamRoster
		payload string
		updated int64
	)
	if err := s.Scan(&t.Owner, &payload, &t.Version, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &t.Members); err != nil {
		return nil, fmt.Errorf("%w: roster %s: %v", domain.ErrValidation, t.Owner, err)
	}
	if t.Members == nil {
		t.Members = []domain.Member{}
	}
	if updated > 0 {
		t.UpdatedAt = time.Unix(0, updated).UTC()
	}
	return &t, nil
}
