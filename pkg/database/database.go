package database

import (
	"fmt"
	"log"

	"youthhub_backend/internal/config"
	"youthhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Models 引擎使用的全部表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.CompletedCourse{},
		&model.CompletedChallenge{},
		&model.Badge{},
		&model.Course{},
		&model.CourseModule{},
		&model.QuizQuestion{},
		&model.CourseProgress{},
		&model.QuizAttempt{},
		&model.Challenge{},
		&model.ChallengeParticipant{},
		&model.ChallengeSubmission{},
		&model.ChallengeWinner{},
		&model.CompletionFlag{},
		&model.ActivityLog{},
	}
}

// Migrate 自动迁移表结构，并在徽章目录为空时写入默认徽章
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	log.Println("Database migration completed")

	return SeedDefaultBadges(db)
}

// 默认徽章目录
func SeedDefaultBadges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultBadges := []model.Badge{
		{Name: "新手上路", Icon: "sprout", Description: "加入平台即可获得", ThresholdPoints: 0, Position: 1},
		{Name: "好学者", Icon: "book", Description: "累计获得 100 积分", ThresholdPoints: 100, Position: 2},
		{Name: "探索者", Icon: "compass", Description: "累计获得 500 积分", ThresholdPoints: 500, Position: 3},
		{Name: "挑战达人", Icon: "trophy", Description: "累计获得 1500 积分", ThresholdPoints: 1500, Position: 4},
		{Name: "学习之星", Icon: "star", Description: "累计获得 5000 积分", ThresholdPoints: 5000, Position: 5},
	}
	return db.Create(&defaultBadges).Error
}
