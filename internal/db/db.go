package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tranduykhanh2004/storely/internal/models"
)

// DB wraps the GORM session and the underlying instrumented connection.
type DB struct {
	*gorm.DB
	sqlDB *sql.DB
}

// NewDB opens a MySQL connection instrumented with OpenTelemetry and layers
// the GORM session on top of it.
func NewDB(dsn, serviceName string) (*DB, error) {
	driverName, err := otelsql.Register("mysql",
		otelsql.WithAttributes(
			attribute.String("db.system", "mysql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(sqlDB, otelsql.WithAttributes(
		attribute.String("db.system", "mysql"),
		attribute.String("service.name", serviceName),
	)); err != nil {
		logrus.WithError(err).Warn("failed to register otelsql stats metrics")
	}

	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &DB{DB: gormDB, sqlDB: sqlDB}, nil
}

// Migrate creates/updates the schema for all entities.
func (db *DB) Migrate() error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductColor{},
		&models.ProductItem{},
		&models.FeaturedItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.FlashSale{},
		&models.FlashSaleItem{},
		&models.Banner{},
		&models.NewsFeed{},
	)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}
