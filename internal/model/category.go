package model

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"column:name;size:100;uniqueIndex;not null"`
	Slug        string `gorm:"column:slug;size:120;uniqueIndex;not null"`
	Description string `gorm:"column:description;size:2000"`
	Status      string `gorm:"column:status;size:20;default:active;not null;index"`
}

func (Category) TableName() string {
	return "categories"
}
