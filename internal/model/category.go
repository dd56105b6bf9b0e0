package model

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey;size:36"`
	OwnerUID  string    `gorm:"column:owner_uid;size:128;index:idx_categories_owner_uid;not null"`
	Name      string    `gorm:"size:120;not null"`
	Icon      string    `gorm:"size:8"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
