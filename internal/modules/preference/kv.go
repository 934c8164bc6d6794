package preference

import (
	"context"
	"errors"

	"github.com/sushilduseja/saarthi/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the durable backend for preference rows.
type KV interface {
	Get(ctx context.Context, clientID, name string) (value string, ok bool, err error)
	Set(ctx context.Context, clientID, name, value string) error
}

// GormKV persists preferences in the preferences table.
type GormKV struct{ db *gorm.DB }

func NewGormKV(db *gorm.DB) *GormKV { return &GormKV{db: db} }

func (g *GormKV) Get(ctx context.Context, clientID, name string) (string, bool, error) {
	var row models.PreferenceModel
	err := g.db.WithContext(ctx).
		Where("client_id = ? AND name = ?", clientID, name).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Value, true, nil
}

func (g *GormKV) Set(ctx context.Context, clientID, name, value string) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&models.PreferenceModel{
		ClientID: clientID,
		Name:     name,
		Value:    value,
	}).Error
}
