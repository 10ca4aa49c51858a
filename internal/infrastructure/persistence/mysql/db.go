package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 生产环境使用MySQL；本地开发和测试可切换到sqlite（database.driver）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 按配置自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		// 把驱动的唯一索引冲突翻译为gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == "sqlite" {
		// sqlite同一时间只允许一个写连接，多连接并发写会返回database is locked
		sqlDB.SetMaxOpenConns(1)
	} else {
		// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		// 连接最大存活时间（防止数据库主动断开连接）
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info(log.WithField(context.Background(), "driver", cfg.Database.Driver), "数据库连接成功")

	if cfg.Database.AutoMigrate {
		// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// 学习要点：AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LocationAssignmentModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. barcode有唯一索引,是Add判重的最终依据
// 2. quantity/location可为NULL,表示尚未上架
// 3. 没有DeletedAt:删除是物理删除,删除后同一条码可以重新登记
// 4. version随每次写操作递增,读缓存时和它比对
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	Barcode       string    `gorm:"uniqueIndex;size:64;not null;comment:图书条码"`
	Name          string    `gorm:"index:idx_search;size:200;not null;default:'';comment:书名"`
	Author        string    `gorm:"index:idx_search;size:100;not null;default:'';comment:作者"`
	PublishedDate string    `gorm:"size:32;not null;default:'';comment:出版日期"`
	Genre         string    `gorm:"index;size:50;not null;default:'';comment:类别"`
	Quantity      *int      `gorm:"comment:可借副本数(NULL表示未上架)"`
	Location      *string   `gorm:"index;size:64;comment:当前位置条码(NULL表示未分配)"`
	Version       uint      `gorm:"not null;default:1;comment:修订号(每次写操作加1)"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LocationAssignmentModel GORM上架台账模型
// 教学要点:
// 1. 只插入不更新,因此没有UpdatedAt
// 2. 与books表之间没有外键,台账可以引用尚未登记的图书
type LocationAssignmentModel struct {
	ID              uint      `gorm:"primaryKey"`
	LocationBarcode string    `gorm:"index;size:64;not null;comment:位置条码"`
	BookBarcode     string    `gorm:"index;size:64;not null;comment:图书条码"`
	Quantity        int       `gorm:"not null;comment:上架数量"`
	CreatedAt       time.Time `gorm:"index;comment:上架时间"`
}

// TableName 指定表名
func (LocationAssignmentModel) TableName() string {
	return "location_assignments"
}
