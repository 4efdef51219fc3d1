package repositories

import (
	"context"
	"errors"
	"time"

	"boutique-shop/config"
	"boutique-shop/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(ctx,
		`SELECT id, email, password, role, created_at, updated_at FROM users WHERE email=$1`,
		email).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(ctx,
		`SELECT id, email, password, role, created_at, updated_at FROM users WHERE id=$1`,
		id).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	var u models.UserWithProfile
	err := config.DB.QueryRow(ctx,
		`SELECT u.id, u.email, u.role, u.created_at,
			COALESCE(p.full_name, ''), COALESCE(p.phone, ''), COALESCE(p.photo_url, '')
		 FROM users u
		 LEFT JOIN user_profiles p ON u.id = p.user_id
		 WHERE u.id = $1`,
		userID).Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt, &u.FullName, &u.Phone, &u.PhotoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := config.DB.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(photo_url, ''), created_at, updated_at
		 FROM user_profiles WHERE user_id=$1`,
		userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE user_profiles SET full_name=$1, phone=$2, photo_url=$3, updated_at=$4 WHERE user_id=$5`,
		profile.FullName, profile.Phone, profile.PhotoURL, time.Now(), profile.UserID)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE users SET password=$1, updated_at=$2 WHERE id=$3`,
		hashedPassword, time.Now(), userID)
	return err
}
