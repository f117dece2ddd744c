package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Source types recorded on imported recipes.
const (
	SourceYouTube   = "youtube"
	SourceInstagram = "instagram"
	SourceTikTok    = "tiktok"
	SourceFacebook  = "facebook"
	SourceSocial    = "social"
	SourceWeb       = "web"
)

// Recipe is a stored recipe. Deleting a recipe is a soft delete: the row
// stays in the trash until it is restored or purged.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
	Name         string             `gorm:"size:255;not null" json:"name"`
	SourceURL    string             `gorm:"size:2048;not null" json:"source_url"`
	SourceType   string             `gorm:"size:20;index" json:"source_type"`
	PrepTime     string             `gorm:"size:20" json:"prep_time,omitempty"`
	CookTime     string             `gorm:"size:20" json:"cook_time,omitempty"`
	TotalTime    string             `gorm:"size:20" json:"total_time,omitempty"`
	Servings     string             `gorm:"size:50" json:"servings,omitempty"`
	Category     string             `gorm:"size:50;index" json:"category,omitempty"`
	Cuisine      string             `gorm:"size:50;index" json:"cuisine,omitempty"`
	Calories     *int               `json:"calories,omitempty"`
	MainImageURL string             `gorm:"size:2048" json:"main_image_url,omitempty"`
	CardColor    string             `gorm:"size:20" json:"card_color,omitempty"`
	Tags         JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Embedding    pgvector.Vector    `gorm:"type:vector(64)" json:"-"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions []Instruction      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	// An empty vector cannot be stored or scanned back.
	if len(r.Embedding.Slice()) == 0 {
		r.Embedding = pgvector.NewVector(make([]float32, EmbeddingDims))
	}
	return nil
}

// EmbeddingDims is the width of Recipe.Embedding.
const EmbeddingDims = 64

// Ingredient is shared between recipes; names are unique ignoring case.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"`
	Quantity     *float64   `json:"quantity"`
	Unit         string     `gorm:"size:50" json:"unit,omitempty"`
	Notes        string     `gorm:"size:255" json:"notes,omitempty"`
	Position     int        `json:"position"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type Instruction struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	SectionName string    `gorm:"size:100" json:"section_name,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

func (in *Instruction) BeforeCreate(tx *gorm.DB) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	return nil
}
