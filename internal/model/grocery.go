package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroceryList struct {
	ID        uuid.UUID         `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `gorm:"index" json:"updated_at"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Items     []GroceryListItem `gorm:"foreignKey:GroceryListID;constraint:OnDelete:CASCADE" json:"items"`
	Recipes   []Recipe          `gorm:"many2many:grocery_list_recipes;constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
}

func (l *GroceryList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// RecipeIDs returns the ids of the recipes attached to the list.
func (l *GroceryList) RecipeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l.Recipes))
	for _, r := range l.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

type GroceryListItem struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	GroceryListID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"grocery_list_id"`
	IngredientName     string    `gorm:"size:255;not null" json:"ingredient_name"`
	Quantity           *float64  `json:"quantity"`
	Unit               string    `gorm:"size:50" json:"unit,omitempty"`
	Category           string    `gorm:"size:50" json:"category"`
	RecipeIDs          UUIDArray `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_ids"`
	RetailPackage      string    `gorm:"size:100" json:"retail_package,omitempty"`
	RetailPackageCount int       `json:"retail_package_count,omitempty"`
	ExactAmount        string    `gorm:"size:100" json:"exact_amount,omitempty"`
	IsChecked          bool      `gorm:"not null;default:false" json:"is_checked"`
	Position           int       `json:"position"`
}

func (it *GroceryListItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}
