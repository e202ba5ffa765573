package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new officials settings service.
func NewSettingsService(repo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvc {
	return &settingsService{settingsRepo: repo}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) GetOfficialsSettings(ctx context.Context, actor *domain.ActingUser) (*domain.OfficialsSettings, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	partition := domain.PartitionKeyFor(actor)
	settings, err := s.settingsRepo.FindOfficials(ctx, partition)
	if err != nil {
		if isNotFound(err) {
			return &domain.OfficialsSettings{PartitionKey: partition}, nil
		}
		s.LogError(ctx, err, "Failed to load officials", slog.String("partition", partition))
		return nil, fmt.Errorf("failed to get officials settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateOfficialsSettings(ctx context.Context, req dto.UpdateOfficialsRequest, actor *domain.ActingUser) (*domain.OfficialsSettings, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	settings := domain.OfficialsSettings{
		PartitionKey:       domain.PartitionKeyFor(actor),
		HeadOfficialName:   strings.TrimSpace(req.HeadOfficialName),
		HeadOfficialNIP:    strings.TrimSpace(req.HeadOfficialNIP),
		KeeperOfficialName: strings.TrimSpace(req.KeeperOfficialName),
		KeeperOfficialNIP:  strings.TrimSpace(req.KeeperOfficialNIP),
		OfficeName:         strings.TrimSpace(req.OfficeName),
		OfficeAddress:      strings.TrimSpace(req.OfficeAddress),
		LastUpdatedAt:      time.Now(),
		LastUpdatedBy:      actor.ID,
	}
	if err := s.settingsRepo.UpsertOfficials(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save officials", slog.String("partition", settings.PartitionKey))
		return nil, fmt.Errorf("failed to update officials settings: %w", err)
	}
	s.LogInfo(ctx, "Officials settings updated", slog.String("partition", settings.PartitionKey))
	return &settings, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
