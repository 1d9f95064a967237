package db

import (
	"errors"
	"fmt"
	"path"

	"github.com/go-gorm/caches/v4"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var errUnsupportedDatabase = errors.New("unsupported database type")

func NewDatabase(cfg config.Manager, rootLogger *core.Logger) (*gorm.DB, []core.ContextBuilderOption, error) {
	dbType := cfg.Config().Core.DB.Type
	var db *gorm.DB
	var err error

	switch dbType {
	case "mysql":
		db, err = openMySQLDatabase(cfg, rootLogger)
	case "sqlite":
		var dbFile string

		if path.IsAbs(cfg.Config().Core.DB.File) {
			dbFile = cfg.Config().Core.DB.File
		} else {
			dbFile = path.Join(cfg.ConfigDir(), cfg.Config().Core.DB.File)
		}

		db, err = OpenSQLiteDatabase(dbFile, rootLogger)
	default:
		return nil, nil, fmt.Errorf("%w: %s", errUnsupportedDatabase, dbType)
	}

	if err != nil {
		return nil, nil, err
	}

	cacher, err := getCacher(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cacher != nil {
		cache := &caches.Caches{Conf: &caches.Config{
			Cacher: cacher,
		}}
		if err := db.Use(cache); err != nil {
			return nil, nil, err
		}
	}

	ctxOpts := []core.ContextBuilderOption{
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			return Migrate(db)
		}),
		core.ContextWithDB(db),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}),
	}

	return db, ctxOpts, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.GetModels()...)
}

func openMySQLDatabase(cfg config.Manager, rootLogger *core.Logger) (*gorm.DB, error) {
	username := cfg.Config().Core.DB.Username
	password := cfg.Config().Core.DB.Password
	host := cfg.Config().Core.DB.Host
	port := cfg.Config().Core.DB.Port
	dbname := cfg.Config().Core.DB.Name
	charset := cfg.Config().Core.DB.Charset

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local", username, password, host, port, dbname, charset)

	return gorm.Open(mysql.Open(dsn), gormConfig(rootLogger))
}

func OpenSQLiteDatabase(file string, rootLogger *core.Logger) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(file), gormConfig(rootLogger))
}

func gormConfig(rootLogger *core.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         newLogger(rootLogger.Logger, rootLogger.Level()),
		TranslateError: true,
	}
}

func getCacheMode(cm config.Manager) (config.CacheMode, error) {
	cache := cm.Config().Core.DB.Cache
	if cache == nil {
		return config.CacheModeNone, nil
	}

	switch cache.Mode {
	case "", config.CacheModeNone:
		return config.CacheModeNone, nil
	case config.CacheModeMemory, config.CacheModeRedis:
		return cache.Mode, nil
	default:
		return "", fmt.Errorf("invalid cache mode: %s", cache.Mode)
	}
}

func getCacher(cm config.Manager) (caches.Cacher, error) {
	mode, err := getCacheMode(cm)
	if err != nil {
		return nil, err
	}

	switch mode {
	case config.CacheModeMemory:
		return &memoryCacher{}, nil
	case config.CacheModeRedis:
		rcfg, ok := cm.Config().Core.DB.Cache.Options.(*config.RedisConfig)
		if !ok {
			return nil, errors.New("invalid redis config")
		}
		return &redisCacher{rdb: rcfg.Client()}, nil
	}

	return nil, nil
}
