// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// WatchedStock is a ticker the user saved to the personal watchlist,
// together with the last price and change seen when it was saved.
// Symbol is unique; saving the same symbol again updates the row.
type WatchedStock struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Price     float64   `gorm:"not null;default:0"`
	Change    float64   `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

// TableName はテーブル名を返します。
func (WatchedStock) TableName() string {
	return "stocks"
}
