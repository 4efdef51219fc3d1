package repositories

import (
	"context"

	"boutique-shop/config"
	"boutique-shop/models"
)

type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Get returns the single settings row (seeded by migration).
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := config.DB.QueryRow(ctx,
		`SELECT id, store_name, contact_email, contact_phone,
			COALESCE(facebook_url, ''), COALESCE(instagram_url, ''), COALESCE(announcement, ''),
			home_delivery_fee, stopdesk_fee, free_shipping_from, updated_at
		 FROM settings LIMIT 1`).Scan(
		&s.ID, &s.StoreName, &s.ContactEmail, &s.ContactPhone,
		&s.FacebookURL, &s.InstagramURL, &s.Announcement,
		&s.HomeDeliveryFee, &s.StopdeskFee, &s.FreeShippingFrom, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *models.Settings) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE settings SET store_name=$1, contact_email=$2, contact_phone=$3,
			facebook_url=$4, instagram_url=$5, announcement=$6,
			home_delivery_fee=$7, stopdesk_fee=$8, free_shipping_from=$9, updated_at=NOW()
		 WHERE id=$10`,
		s.StoreName, s.ContactEmail, s.ContactPhone, s.FacebookURL, s.InstagramURL,
		s.Announcement, s.HomeDeliveryFee, s.StopdeskFee, s.FreeShippingFrom, s.ID)
	return err
}
