package db

import (
	"log"
	"os"
)

type Config struct {
	MySQLDSN string
}

func LoadConfig() *Config {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		panic("ENV OF MYSQL_DSN IS EMPTY")
	}
	return &Config{
		MySQLDSN: dsn,
	}
}

func (c *Config) Print() {
	log.Println("MySQL已配置")
}
