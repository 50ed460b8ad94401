package database

import (
	"context"
	"errors"
	"log"
	"time"

	"guaravita-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres backend, runs migrations and returns the
// production Store.
func Connect(databaseURL string) (Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("✅ Database connected successfully")

	if err := db.AutoMigrate(
		&models.Debtor{},
		&models.PaymentRequest{},
	); err != nil {
		return nil, err
	}

	log.Println("✅ Database migrated successfully")

	return &gormStore{db: db}, nil
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) ListDebtors(ctx context.Context) ([]models.Debtor, error) {
	var debtors []models.Debtor
	err := s.db.WithContext(ctx).Order("name ASC").Find(&debtors).Error
	return debtors, err
}

func (s *gormStore) ListRequests(ctx context.Context) ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&requests).Error
	return requests, err
}

func (s *gormStore) GetDebtor(ctx context.Context, id uuid.UUID) (*models.Debtor, error) {
	var debtor models.Debtor
	err := s.db.WithContext(ctx).First(&debtor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &debtor, nil
}

func (s *gormStore) CreateDebtor(ctx context.Context, d *models.Debtor) error {
	return s.db.WithContext(ctx).Create(d).Error
}

// Single conditional statement: the clamp happens in SQL, so two
// concurrent adjustments cannot lose each other's delta.
func (s *gormStore) AddToAmount(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Debtor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount":       gorm.Expr("GREATEST(amount + ?, 0)", delta),
			"last_updated": time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}

func (s *gormStore) ToggleHidden(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Debtor{}).
		Where("id = ?", id).
		UpdateColumn("hidden", gorm.Expr("NOT hidden"))
	return res.RowsAffected > 0, res.Error
}

func (s *gormStore) DeleteDebtor(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Debtor{}, "id = ?", id).Error
}

func (s *gormStore) DeleteRequestsByDebtor(ctx context.Context, debtorID uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.PaymentRequest{}, "debtor_id = ?", debtorID).Error
}

func (s *gormStore) GetRequest(ctx context.Context, id uuid.UUID) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *gormStore) CreateRequest(ctx context.Context, r *models.PaymentRequest) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormStore) MarkRequest(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.PaymentRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
