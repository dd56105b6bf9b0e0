package model

import "time"

type InventoryItem struct {
	ID              string     `gorm:"primaryKey;size:36"`
	OwnerUID        string     `gorm:"column:owner_uid;size:128;index:idx_items_owner_uid;not null"`
	Name            string     `gorm:"size:200;not null"`
	CategoryID      *string    `gorm:"column:category_id;size:36;index:idx_items_category_id"`
	Category        *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	PurchaseDate    *time.Time `gorm:"column:purchase_date;type:date"`
	WarrantyExpiry  *time.Time `gorm:"column:warranty_expiry_date;type:date"`
	StoreName       *string    `gorm:"column:store_name;size:200"`
	Price           *float64   `gorm:"type:decimal(10,2)"`
	ItemPhotoURL    *string    `gorm:"column:item_photo_url;size:512"`
	ReceiptPhotoURL *string    `gorm:"column:receipt_photo_url;size:512"`
	Notes           *string    `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
