package database

import (
	"fmt"
	"log"

	"relieffund/config"
	"relieffund/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Organisation{},
		&models.Campaign{},
		&models.Beneficiary{},
		&models.Vendor{},
		&models.Transaction{},
		&models.Donation{},
		&models.Category{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	// 兼容历史数据：老版本没有 status 字段，默认设置为 active，避免升级后无法登录
	_ = DB.Model(&models.User{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.UserStatusActive).Error

	// 初始化默认类别目录（仅当表为空时）
	var catCount int64
	DB.Model(&models.Category{}).Count(&catCount)
	if catCount == 0 {
		// 默认类别对应的颜色（与后台 CSS 保持一致）
		defaultCats := []struct {
			Name  string
			Color string
		}{
			{"食品", "#ef4444"},   // 红色
			{"药品", "#10b981"},   // 绿色
			{"衣物", "#a855f7"},   // 紫色
			{"住宿", "#14b8a6"},   // 青色
			{"交通", "#3b82f6"},   // 蓝色
			{"教育", "#f59e0b"},   // 橙色
			{"其他", "#64748b"},   // 灰色
		}
		var cats []models.Category
		for i, item := range defaultCats {
			cats = append(cats, models.Category{
				Name:  item.Name,
				Sort:  (i + 1) * 10,
				Color: item.Color,
			})
		}
		if len(cats) > 0 {
			_ = DB.Create(&cats).Error
		}
	}

	// 初始化引导管理员（仅当不存在任何管理员时）
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			admin := models.User{
				Username: "admin",
				Password: string(hashed),
				Role:     models.RoleAdmin,
				Status:   models.UserStatusActive,
			}
			if DB.Create(&admin).Error == nil {
				log.Println("已创建引导管理员账号 admin（默认密码 admin123，请尽快修改）")
			}
		}
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
