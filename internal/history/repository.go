package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when no booking record matches the reference
var ErrRecordNotFound = errors.New("booking record not found")

type Repository interface {
	Create(ctx context.Context, record *BookingRecord) error
	GetByRef(ctx context.Context, bookingRef string) (*BookingRecord, error)
	List(ctx context.Context, limit, offset int) ([]BookingRecord, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *BookingRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create booking record: %w", err)
	}
	return nil
}

func (r *repository) GetByRef(ctx context.Context, bookingRef string) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).Where("booking_ref = ?", bookingRef).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get booking record: %w", err)
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]BookingRecord, int64, error) {
	var records []BookingRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&BookingRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count booking records: %w", err)
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list booking records: %w", err)
	}
	return records, total, nil
}
