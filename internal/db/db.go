package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/marketplace/internal/config"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// Open connects to the store selected by DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(cfg.DBDriver))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxOpen := cfg.DBMaxOpenConns
	if cfg.DBDriver == "sqlite" {
		// one writer at a time keeps sqlite away from SQLITE_BUSY
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(max(maxOpen/2, 1))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func gormConfig(driver string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		// SQL Server refuses the cascade graph (error 1785); its keys are
		// added by sqlServerForeignKeys instead
		DisableForeignKeyConstraintWhenMigrating: isSQLServer(driver),
	}
}

func isSQLServer(driver string) bool {
	return driver == "sqlserver" || driver == "mssql"
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(SQLiteDSN(dsn)), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "sqlserver", "mssql":
		return sqlserver.Open(dsn), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// SQLiteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection by default.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Prepare brings the schema up to date. In auto mode the models are
// auto-migrated (after dropping everything when reset is set); in migrations
// mode the embedded SQL files are applied in order.
func Prepare(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) error {
	switch cfg.DBSchema {
	case "migrations":
		if err := MigrateUp(cfg.DBUrl); err != nil {
			return err
		}
		log.Info("database migrations applied")
		return nil
	default:
		if cfg.DBReset {
			if err := Reset(db); err != nil {
				return err
			}
			log.Warn("database reset: all tables dropped")
		}
		if err := AutoMigrate(db); err != nil {
			return err
		}
		log.WithField("driver", cfg.DBDriver).Info("database schema auto-migrated")
		return nil
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if db.Dialector.Name() == "sqlserver" {
		for _, stmt := range sqlServerForeignKeys() {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to add foreign key: %w", err)
			}
		}
	}
	return nil
}

// sqlServerForeignKeys declares the relations with NO ACTION. SQL Server
// rejects more than one cascading path into sales, so the cascade and the
// nulling happen in DeleteUserCascade.
func sqlServerForeignKeys() []string {
	keys := []struct{ name, table, column, ref string }{
		{"fk_products_seller", "products", "seller_id", "users"},
		{"fk_sales_product", "sales", "product_id", "products"},
		{"fk_sales_seller", "sales", "seller_id", "users"},
		{"fk_sales_buyer", "sales", "buyer_id", "users"},
	}

	stmts := make([]string, 0, len(keys))
	for _, k := range keys {
		stmts = append(stmts, fmt.Sprintf(
			"IF OBJECT_ID(N'%s', N'F') IS NULL ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE NO ACTION ON UPDATE NO ACTION",
			k.name, k.table, k.name, k.column, k.ref,
		))
	}
	return stmts
}

// Reset drops every model table, dependents first.
func Reset(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is understood.
func SupportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	default:
		return false
	}
}
