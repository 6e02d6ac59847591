package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/models"
)

// CreateTeam inserts the team and enrolls the creator as captain in
// one transaction.
func (d *DB) CreateTeam(ctx context.Context, team *models.Team) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO teams (name, location, created_by, created_at) VALUES (?, ?, ?, ?)`,
		team.Name, team.Location, team.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, role, created_at) VALUES (?, ?, ?, ?)`,
		id, team.CreatedBy, models.TeamRoleCaptain, now,
	); err != nil {
		return fmt.Errorf("failed to add captain: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team: %w", err)
	}

	team.ID = id
	team.CreatedAt = now
	return nil
}

func (d *DB) GetTeamByID(ctx context.Context, id int64) (*models.Team, error) {
	return d.scanTeam(d.db.QueryRowContext(ctx,
		`SELECT id, name, location, created_by, created_at FROM teams WHERE id = ?`, id))
}

func (d *DB) GetTeamByCreator(ctx context.Context, userID int64) (*models.Team, error) {
	return d.scanTeam(d.db.QueryRowContext(ctx,
		`SELECT id, name, location, created_by, created_at FROM teams WHERE created_by = ?`, userID))
}

func (d *DB) scanTeam(row *sql.Row) (*models.Team, error) {
	var team models.Team
	err := row.Scan(&team.ID, &team.Name, &team.Location, &team.CreatedBy, &team.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// AddTeamMember enrolls a user; joining a team twice is a conflict.
func (d *DB) AddTeamMember(ctx context.Context, member *models.TeamMember) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = ? AND user_id = ?`,
		member.TeamID, member.UserID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if count > 0 {
		return ErrAlreadyTeamMember
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, role, created_at) VALUES (?, ?, ?, ?)`,
		member.TeamID, member.UserID, member.Role, now,
	)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit membership: %w", err)
	}

	member.ID = id
	member.CreatedAt = now
	return nil
}

func (d *DB) ListTeamMembers(ctx context.Context, teamID int64) ([]*models.TeamMemberDetail, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT m.id, m.team_id, m.user_id, m.role, m.created_at, u.name, u.email, u.phone
         FROM team_members m JOIN users u ON u.id = m.user_id
         WHERE m.team_id = ?
         ORDER BY m.created_at ASC, m.id ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []*models.TeamMemberDetail
	for rows.Next() {
		var m models.TeamMemberDetail
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt,
			&m.Contact.Name, &m.Contact.Email, &m.Contact.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (d *DB) ListTeamsByLocation(ctx context.Context, location string) ([]*models.Team, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, location, created_by, created_at FROM teams
         WHERE LOWER(location) LIKE ? ORDER BY name ASC`, likePattern(location))
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Location, &team.CreatedBy, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}
