package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"glucolog/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env file found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("configuration invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("configuration ok")
	fmt.Printf("  server addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  db host:     %s\n", cfg.DB.Host)
	fmt.Printf("  db port:     %s\n", cfg.DB.Port)
	fmt.Printf("  db user:     %s\n", cfg.DB.User)
	fmt.Printf("  db password: %s\n", maskSecret(cfg.DB.Password))
	fmt.Printf("  db name:     %s\n", cfg.DB.DBName)
	fmt.Printf("  log level:   %v\n", cfg.Logger.Level)
	fmt.Printf("  log output:  %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  log format:  %s\n", cfg.Logger.Format)
}

func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + "..." + s[len(s)-2:]
}
