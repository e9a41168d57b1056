package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Settings adalah parameter koneksi, diisi dari config oleh FromConfig.
type Settings struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Retries  int
}

func FromConfig() Settings {
	return Settings{
		Driver:   config.DBDriver,
		Host:     config.DBHost,
		Port:     config.DBPort,
		User:     config.DBUser,
		Password: config.DBPassword,
		Name:     config.DBName,
		Retries:  config.DBConnectRetries,
	}
}

// DSN menyusun connection string sesuai driver. dbName kosong berarti
// koneksi ke server tanpa memilih database.
func (s Settings) DSN(dbName string) (string, error) {
	switch s.Driver {
	case "postgres":
		if dbName == "" {
			dbName = "postgres"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			s.Host, s.User, s.Password, dbName, s.Port), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			s.User, s.Password, s.Host, s.Port, dbName), nil
	case "mssql":
		if dbName == "" {
			dbName = "master"
		}
		return fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			s.User, s.Password, s.Host, s.Port, dbName), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER: %s", s.Driver)
	}
}

func (s Settings) Dialector(dbName string) (gorm.Dialector, error) {
	dsn, err := s.DSN(dbName)
	if err != nil {
		return nil, err
	}
	switch s.Driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return sqlserver.Open(dsn), nil
	}
}

// Connect membuka database utama, mencoba ulang dengan exponential backoff
// selama server database belum siap menerima koneksi.
func Connect(ctx context.Context, s Settings) (*gorm.DB, error) {
	dialector, err := s.Dialector(s.Name)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	attempt := 0
	operation := func() error {
		attempt++
		conn, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			logger.L().Warn("koneksi database gagal", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			logger.L().Warn("ping database gagal", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		db = conn
		return nil
	}

	if err := backoffRetry(ctx, s.Retries, operation); err != nil {
		return nil, fmt.Errorf("connect %s: %w", s.Driver, err)
	}
	logger.L().Info("database terhubung", zap.String("driver", s.Driver), zap.String("name", s.Name))
	return db, nil
}

func backoffRetry(ctx context.Context, retries int, operation backoff.Operation) error {
	return backoff.Retry(operation, retryPolicy(ctx, retries))
}

func retryPolicy(ctx context.Context, retries int) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.MaxInterval = 10 * time.Second
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// EnsureDatabaseExists membuat database bila belum ada.
func EnsureDatabaseExists(ctx context.Context, s Settings) error {
	dialector, err := s.Dialector("")
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	exists, err := databaseExists(db.WithContext(ctx), s.Driver, s.Name)
	if err != nil || exists {
		return err
	}
	return db.WithContext(ctx).Exec(createDatabaseSQL(s.Driver, s.Name)).Error
}

func databaseExists(db *gorm.DB, driver, name string) (bool, error) {
	var count int64
	var err error
	switch driver {
	case "postgres":
		err = db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", name).Scan(&count).Error
	case "mysql":
		err = db.Raw("SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", name).Scan(&count).Error
	default:
		err = db.Raw("SELECT COUNT(*) FROM sys.databases WHERE name = ?", name).Scan(&count).Error
	}
	return count > 0, err
}

func createDatabaseSQL(driver, name string) string {
	switch driver {
	case "mysql":
		return "CREATE DATABASE IF NOT EXISTS `" + name + "`"
	case "mssql":
		return "CREATE DATABASE [" + name + "]"
	default:
		return `CREATE DATABASE "` + name + `"`
	}
}
