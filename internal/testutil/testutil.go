// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/marketplace/internal/db"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// Password is the plain password of every user made by CreateUser.
const Password = "secret1"

var seq atomic.Int64

// NewDB opens a private in-memory sqlite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dbpkg.SQLiteDSN(dsn)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// hash is computed once; bcrypt is slow on purpose.
var hash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func CreateUser(t testing.TB, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateProduct(t testing.TB, db *gorm.DB, sellerID uint, name, description, category, price string) *models.Product {
	t.Helper()

	p := &models.Product{
		SellerID:    sellerID,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://cdn.test/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".webp",
	}
	require.NoError(t, db.Omit("Seller").Create(p).Error)
	return p
}
