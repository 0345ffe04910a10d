package db

import (
	"context"

	"gorm.io/gorm"

	"pricewatch/internal/domain"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) CountActive(ctx context.Context, token string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("token = ? AND active = ?", token, true).
		Count(&count).Error
	return count, err
}

func (r *AlertRepository) ListActive(ctx context.Context, token string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("token = ? AND active = ?", token, true).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListDistinctSymbols(ctx context.Context, source string) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("active = ? AND source = ?", true, source).
		Distinct().
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *AlertRepository) FindCandidates(ctx context.Context, symbol, source string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND symbol = ? AND source = ?", true, symbol, source).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

// TryDeactivate is a single conditional UPDATE scoped to active = true, so
// among any number of concurrent callers exactly one observes RowsAffected = 1.
func (r *AlertRepository) TryDeactivate(ctx context.Context, alertID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND active = ?", alertID, true).
		Update("active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *AlertRepository) DeactivateOwned(ctx context.Context, alertID uint, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND token = ? AND active = ?", alertID, token, true).
		Update("active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, domain.Alert{
			ID:        model.ID,
			Token:     model.Token,
			Symbol:    model.Symbol,
			Direction: domain.Direction(model.Direction),
			Price:     model.Price,
			Source:    model.Source,
			Active:    model.Active,
			CreatedAt: model.CreatedAt,
		})
	}
	return alerts
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:        alert.ID,
		Token:     alert.Token,
		Symbol:    alert.Symbol,
		Direction: string(alert.Direction),
		Price:     alert.Price,
		Source:    alert.Source,
		Active:    alert.Active,
		CreatedAt: alert.CreatedAt,
	}
}
