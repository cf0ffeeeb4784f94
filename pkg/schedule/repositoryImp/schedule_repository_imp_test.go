package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"krishi/config"
	"krishi/database"
	"krishi/entities"
	"krishi/pkg/cropcal"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "t.db")})
	require.NoError(t, err)
	return db
}

func TestCropEventUpsert_ReplacesSowingDate(t *testing.T) {
	ctx := context.Background()
	repo := NewCropEventRepository(openDB(t))

	require.NoError(t, repo.Upsert(ctx, &entities.CropEvent{FarmerPhone: "9999", Crop: "Rice", SowingDate: "2024-01-01"}))
	require.NoError(t, repo.Upsert(ctx, &entities.CropEvent{FarmerPhone: "9999", Crop: "Rice", SowingDate: "2024-02-01"}))
	require.NoError(t, repo.Upsert(ctx, &entities.CropEvent{FarmerPhone: "9999", Crop: "Banana", SowingDate: "2024-01-15"}))
	require.NoError(t, repo.Upsert(ctx, &entities.CropEvent{FarmerPhone: "8888", Crop: "Rice", SowingDate: "2023-12-01"}))

	mine, err := repo.ListByFarmer(ctx, "9999")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Rice", mine[0].Crop)
	assert.Equal(t, "2024-02-01", mine[0].SowingDate)
	assert.Equal(t, "Banana", mine[1].Crop)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRuleRepository_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	_, err := database.SeedScheduleRules(db, []entities.ScheduleRule{
		{CropName: "Rice", Activity: "Harvesting", DaysAfterSowing: 120},
		{CropName: "Tomato", Activity: "Staking/Support", DaysAfterSowing: 25},
		{CropName: "Rice", Activity: "First Weeding", DaysAfterSowing: 20},
	})
	require.NoError(t, err)
	repo := NewRuleRepository(db)

	rice, err := repo.ListByCrop(ctx, "Rice")
	require.NoError(t, err)
	require.Len(t, rice, 2)
	assert.Equal(t, "Harvesting", rice[0].Activity)
	assert.Equal(t, "First Weeding", rice[1].Activity)

	none, err := repo.ListByCrop(ctx, "Coconut")
	require.NoError(t, err)
	assert.Empty(t, none)

	crops, err := repo.Crops(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice", "Tomato"}, crops)
}

func TestRuleRepository_AllFeedsLookup(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	_, err := database.SeedScheduleRules(db, cropcal.DefaultRules())
	require.NoError(t, err)

	all, err := NewRuleRepository(db).All(ctx)
	require.NoError(t, err)
	lookup := cropcal.MapLookup(cropcal.RulesByCrop(all))
	assert.Len(t, lookup("Potato"), 3)
	assert.Nil(t, lookup("Coconut"))
}
