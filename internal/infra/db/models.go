package db

import "time"

type alertModel struct {
	ID        uint    `gorm:"primaryKey"`
	Token     string  `gorm:"index:idx_alerts_token;not null"`
	Symbol    string  `gorm:"index:idx_alerts_symbol_source_active,priority:1;not null"`
	Direction string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Source    string  `gorm:"index:idx_alerts_symbol_source_active,priority:2;not null;default:binance"`
	Active    bool    `gorm:"index:idx_alerts_symbol_source_active,priority:3"`
	CreatedAt time.Time
}

func (alertModel) TableName() string { return "alerts" }
