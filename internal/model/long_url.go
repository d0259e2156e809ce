package model

// LongURL holds one canonical long URL. The unique index on URL keeps
// dedup global: concurrent creates of the same URL are arbitrated by
// the constraint, not by application locking.
type LongURL struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	URL     string `gorm:"size:200;uniqueIndex;not null" json:"url"`
	OwnerID uint   `gorm:"not null;index" json:"ownerId"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LongURL) TableName() string {
	return "long_url"
}
