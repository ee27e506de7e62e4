// Package mysql handles database connection setup and schema migration,
// then hands off to the repository layer.
package mysql

import (
	"fmt"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/model"
)

// Init opens the MySQL connection, migrates the schema and returns the
// repository aggregate. AutoMigrate creates missing tables and columns but
// never drops existing data.
func Init() *repository.Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	err = db.AutoMigrate(
		&model.UserInfo{},
		&model.GroupInfo{},
		&model.GroupMember{},
		&model.ContributionRecord{},
		&model.Distribution{},
		&model.AuditEvent{},
		&model.EscrowPool{},
		&model.EscrowContribution{},
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
