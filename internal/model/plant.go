package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CareGuide is stored as JSON on the plant row.
type CareGuide struct {
	Light       string `json:"light,omitempty"`
	Water       string `json:"water,omitempty"`
	Humidity    string `json:"humidity,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	PetSafe     *bool  `json:"petSafe,omitempty"`
}

type Plant struct {
	gorm.Model
	Name           string                        `gorm:"column:name;size:100;not null;index"`
	ScientificName string                        `gorm:"column:scientific_name;size:150"`
	Description    string                        `gorm:"column:description;size:2000"`
	CategoryID     uint                          `gorm:"column:category_id;not null;index"`
	Category       *Category                     `gorm:"foreignKey:CategoryID"`
	Price          float64                       `gorm:"column:price;not null;default:0;index"`
	Stock          int                           `gorm:"column:stock;not null;default:0"`
	Status         string                        `gorm:"column:status;size:20;default:available;not null;index"`
	ImageURL       string                        `gorm:"column:image_url;size:2048"`
	Care           datatypes.JSONType[CareGuide] `gorm:"column:care"`
}

func (Plant) TableName() string {
	return "plants"
}
