package services

import (
	"context"

	"boutique-shop/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, s *models.Settings) error
}

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.StoreName != "" {
		settings.StoreName = req.StoreName
	}
	if req.ContactEmail != "" {
		settings.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		settings.ContactPhone = req.ContactPhone
	}
	if req.FacebookURL != "" {
		settings.FacebookURL = req.FacebookURL
	}
	if req.InstagramURL != "" {
		settings.InstagramURL = req.InstagramURL
	}
	if req.Announcement != "" {
		settings.Announcement = req.Announcement
	}
	if req.HomeDeliveryFee != nil && *req.HomeDeliveryFee >= 0 {
		settings.HomeDeliveryFee = *req.HomeDeliveryFee
	}
	if req.StopdeskFee != nil && *req.StopdeskFee >= 0 {
		settings.StopdeskFee = *req.StopdeskFee
	}
	if req.FreeShippingFrom != nil && *req.FreeShippingFrom >= 0 {
		settings.FreeShippingFrom = *req.FreeShippingFrom
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
