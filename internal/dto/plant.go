package dto

import (
	"time"

	"github.com/greenhouse-labs/catalog/internal/model"
)

type CareGuide struct {
	Light       string `json:"light,omitempty" binding:"omitempty,max=200"`
	Water       string `json:"water,omitempty" binding:"omitempty,max=200"`
	Humidity    string `json:"humidity,omitempty" binding:"omitempty,max=200"`
	Temperature string `json:"temperature,omitempty" binding:"omitempty,max=200"`
	PetSafe     *bool  `json:"petSafe,omitempty"`
}

type CreatePlantRequest struct {
	Name           string     `json:"name" binding:"required,min=2,max=100"`
	ScientificName string     `json:"scientificName" binding:"omitempty,max=150"`
	Description    string     `json:"description" binding:"omitempty,max=2000"`
	CategoryID     uint       `json:"categoryId" binding:"required,gt=0"`
	Price          float64    `json:"price" binding:"gte=0"`
	Stock          int        `json:"stock" binding:"gte=0"`
	Status         string     `json:"status" binding:"omitempty,oneof=available out_of_stock discontinued"`
	ImageURL       string     `json:"imageUrl" binding:"omitempty,url,max=2048"`
	Care           *CareGuide `json:"care"`
}

type UpdatePlantRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=2,max=100"`
	ScientificName *string    `json:"scientificName" binding:"omitempty,max=150"`
	Description    *string    `json:"description" binding:"omitempty,max=2000"`
	CategoryID     *uint      `json:"categoryId" binding:"omitempty,gt=0"`
	Price          *float64   `json:"price" binding:"omitempty,gte=0"`
	Stock          *int       `json:"stock" binding:"omitempty,gte=0"`
	Status         *string    `json:"status" binding:"omitempty,oneof=available out_of_stock discontinued"`
	ImageURL       *string    `json:"imageUrl" binding:"omitempty,url,max=2048"`
	Care           *CareGuide `json:"care"`
}

type PlantResponse struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	ScientificName string            `json:"scientificName,omitempty"`
	Description    string            `json:"description,omitempty"`
	CategoryID     uint              `json:"categoryId"`
	Category       *CategoryResponse `json:"category,omitempty"`
	Price          float64           `json:"price"`
	Stock          int               `json:"stock"`
	Status         string            `json:"status"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	Care           CareGuide         `json:"care"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func NewPlantResponse(p model.Plant) PlantResponse {
	care := p.Care.Data()
	res := PlantResponse{
		ID:             p.ID,
		Name:           p.Name,
		ScientificName: p.ScientificName,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		Stock:          p.Stock,
		Status:         p.Status,
		ImageURL:       p.ImageURL,
		Care: CareGuide{
			Light:       care.Light,
			Water:       care.Water,
			Humidity:    care.Humidity,
			Temperature: care.Temperature,
			PetSafe:     care.PetSafe,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Category != nil {
		category := NewCategoryResponse(*p.Category)
		res.Category = &category
	}
	return res
}

// Model converts the request body to the stored care attributes.
func (c *CareGuide) Model() model.CareGuide {
	if c == nil {
		return model.CareGuide{}
	}
	return model.CareGuide{
		Light:       c.Light,
		Water:       c.Water,
		Humidity:    c.Humidity,
		Temperature: c.Temperature,
		PetSafe:     c.PetSafe,
	}
}
