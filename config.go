package main

import (
	"fmt"
	"os"
)

type Config struct {
	Port string
}

func LoadConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return &Config{
		Port: port,
	}
}

func (c *Config) Print() {
	fmt.Println("Listen port:", c.Port)
}
