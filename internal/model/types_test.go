package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestJSONBStringArray(t *testing.T) {
	v, err := JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONBStringArray{"quick", "vegan"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["quick","vegan"]`, v)

	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, JSONBStringArray{"a", "b"}, a)
	require.NoError(t, a.Scan(`["c"]`))
	assert.Equal(t, JSONBStringArray{"c"}, a)
	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)
	assert.Error(t, a.Scan(42))
}

func TestUUIDArray(t *testing.T) {
	id := uuid.New()
	v, err := UUIDArray{id}.Value()
	require.NoError(t, err)

	var a UUIDArray
	require.NoError(t, a.Scan(v))
	assert.True(t, a.Contains(id))
	assert.False(t, a.Contains(uuid.New()))
}

func TestBeforeCreateAssignsIDs(t *testing.T) {
	r := &Recipe{}
	require.NoError(t, r.BeforeCreate(&gorm.DB{}))
	assert.NotEqual(t, uuid.Nil, r.ID)

	kept := uuid.New()
	list := &GroceryList{ID: kept}
	require.NoError(t, list.BeforeCreate(&gorm.DB{}))
	assert.Equal(t, kept, list.ID)

	list.Recipes = []Recipe{*r}
	assert.Equal(t, []uuid.UUID{r.ID}, list.RecipeIDs())
}
