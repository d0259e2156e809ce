package model

import "time"

// ShortURL maps a short code to its long record. LongURLID is nullable
// in the schema but always populated by the registry; at most one row
// exists per long record.
type ShortURL struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"ownerId"`
	LongURLID *uint     `gorm:"column:full_url_id" json:"fullUrlId"`
	ShortCode string    `gorm:"size:40;uniqueIndex;not null" json:"shortCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Long  *LongURL `gorm:"foreignKey:LongURLID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShortURL) TableName() string {
	return "short_url"
}
