package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UsageSuccess = "success"
	UsageFailed  = "failed"
)

// LLMUsage records one call made by the recipe extractor.
type LLMUsage struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
	Model        string    `gorm:"size:100;not null;index" json:"model"`
	InputTokens  int       `gorm:"not null;default:0" json:"input_tokens"`
	OutputTokens int       `gorm:"not null;default:0" json:"output_tokens"`
	CostUSD      float64   `gorm:"not null;default:0" json:"cost_usd"`
	Status       string    `gorm:"size:20;not null;index" json:"status"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
}

func (LLMUsage) TableName() string {
	return "llm_usage"
}

func (u *LLMUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Instruction{},
		&GroceryList{},
		&GroceryListItem{},
		&LLMUsage{},
	}
}
