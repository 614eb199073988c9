package seed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop-service/internal/model"
	"shop-service/pkg/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRunSeedsDemoCatalogOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Run(db))

	var products []model.Product
	require.NoError(t, db.Find(&products).Error)
	require.Len(t, products, 13)
	for _, p := range products {
		require.NotEmpty(t, p.Description, "product %q has no description", p.Name)
	}

	// second run changes nothing
	require.NoError(t, Run(db))
	var count int64
	db.Model(&model.Product{}).Count(&count)
	require.EqualValues(t, 13, count)
}

func TestRunSkipsSeedingNonEmptyCatalog(t *testing.T) {
	db := openTestDB(t)

	p := model.Product{Name: "Custom", Price: decimal.NewFromInt(100), Description: "mine"}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, Run(db))

	var count int64
	db.Model(&model.Product{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRunBackfillsMissingDescriptions(t *testing.T) {
	db := openTestDB(t)

	known := model.Product{Name: "Apple", Price: decimal.NewFromInt(240)}
	unknown := model.Product{Name: "Mystery Flavor", Price: decimal.NewFromInt(300)}
	require.NoError(t, db.Create(&known).Error)
	require.NoError(t, db.Create(&unknown).Error)

	require.NoError(t, Run(db))

	// fresh destination per lookup: a populated primary key would leak into
	// the next query's conditions
	var seeded model.Product
	require.NoError(t, db.First(&seeded, known.ID).Error)
	require.Equal(t, descriptions["Apple"], seeded.Description)

	var fellBack model.Product
	require.NoError(t, db.First(&fellBack, unknown.ID).Error)
	require.Equal(t, fallbackDescription, fellBack.Description)
}

func TestRunLeavesExistingDescriptionsAlone(t *testing.T) {
	db := openTestDB(t)

	p := model.Product{Name: "Apple", Price: decimal.NewFromInt(240), Description: "hand-written"}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, Run(db))

	var got model.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	require.Equal(t, "hand-written", got.Description)
}
