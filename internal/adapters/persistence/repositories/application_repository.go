package repositories

import (
	"context"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID with its reviewer preloaded
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List lists applications, optionally filtered by status, newest first
func (r *applicationRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Application, int64, error) {
	var apps []*models.Application
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Application{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Reviewer").
		Order("application_date DESC").
		Offset(offset).Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// CountPending counts applications still awaiting review
func (r *applicationRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("status = ?", models.ApplicationPending).
		Count(&count).Error
	return count, err
}

// Delete deletes an application
func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, id).Error
}

// MarkReviewed applies the terminal transition. The WHERE clause on the
// current status makes concurrent double-review a detectable no-op instead
// of a lost update: the second writer sees zero rows changed.
func (r *applicationRepository) MarkReviewed(ctx context.Context, id uint, status string, reviewerID uint, notes string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("application_id = ? AND status = ?", id, models.ApplicationPending).
		Updates(map[string]interface{}{
			"status":         status,
			"processed_by":   reviewerID,
			"processed_date": at,
			"review_notes":   notes,
		})
	return result.RowsAffected, result.Error
}
