package main

import (
	"fmt"
	"log"

	"todosync/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dev helper: wipes all task and user rows so local testing starts
// from a clean database. Never run this against anything but a dev
// instance.
func main() {
	fmt.Println("todosync - clear all data")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password,
		cfg.Database.DBName, cfg.Database.Port, cfg.Database.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	// tasks first, it references users
	for _, table := range []string{"tasks", "users"} {
		if result := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); result.Error != nil {
			fmt.Printf("  warning: could not truncate %s: %v\n", table, result.Error)
			continue
		}
		fmt.Printf("  truncated %s\n", table)
	}

	fmt.Println("done")
}
