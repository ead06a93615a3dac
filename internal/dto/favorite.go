package dto

import (
	"time"

	"github.com/greenhouse-labs/catalog/internal/model"
)

type CreateFavoriteRequest struct {
	PlantID uint   `json:"plantId" binding:"required,gt=0"`
	Note    string `json:"note" binding:"omitempty,max=500"`
}

type FavoriteResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	PlantID   uint           `json:"plantId"`
	Plant     *PlantResponse `json:"plant,omitempty"`
	Note      string         `json:"note,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewFavoriteResponse(f model.Favorite) FavoriteResponse {
	res := FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		PlantID:   f.PlantID,
		Note:      f.Note,
		CreatedAt: f.CreatedAt,
	}
	if f.Plant != nil {
		plant := NewPlantResponse(*f.Plant)
		res.Plant = &plant
	}
	return res
}
