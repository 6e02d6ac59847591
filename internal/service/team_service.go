package service

import (
	"context"

	"turfbook/internal/domain"
	"turfbook/internal/models"

	"github.com/rs/zerolog"
)

type TeamService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewTeamService(repo domain.Repository, logger *zerolog.Logger) *TeamService {
	return &TeamService{repo: repo, logger: logger}
}

// CreateTeam makes a team with the creator enrolled as captain.
func (s *TeamService) CreateTeam(ctx context.Context, name, location string, creatorID int64) (*models.Team, error) {
	team := &models.Team{Name: name, Location: location, CreatedBy: creatorID}
	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) JoinTeam(ctx context.Context, teamID, userID int64) (*models.TeamMember, error) {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}

	member := &models.TeamMember{TeamID: teamID, UserID: userID, Role: models.TeamRolePlayer}
	if err := s.repo.AddTeamMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *TeamService) MyTeam(ctx context.Context, userID int64) (*models.TeamDetail, error) {
	team, err := s.repo.GetTeamByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withMembers(ctx, team)
}

func (s *TeamService) TeamsByLocation(ctx context.Context, location string) ([]*models.TeamDetail, error) {
	teams, err := s.repo.ListTeamsByLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	details := make([]*models.TeamDetail, 0, len(teams))
	for _, team := range teams {
		detail, err := s.withMembers(ctx, team)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *TeamService) withMembers(ctx context.Context, team *models.Team) (*models.TeamDetail, error) {
	members, err := s.repo.ListTeamMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &models.TeamDetail{Team: *team, Members: members}, nil
}
