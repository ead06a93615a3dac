package model

import "gorm.io/gorm"

type Favorite struct {
	gorm.Model
	UserID  uint   `gorm:"column:user_id;not null;uniqueIndex:idx_favorites_user_plant"`
	User    *User  `gorm:"foreignKey:UserID"`
	PlantID uint   `gorm:"column:plant_id;not null;uniqueIndex:idx_favorites_user_plant;index"`
	Plant   *Plant `gorm:"foreignKey:PlantID"`
	Note    string `gorm:"column:note;size:500"`
}

func (Favorite) TableName() string {
	return "favorites"
}
