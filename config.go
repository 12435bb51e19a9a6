package main

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port    string
	MongoURI string
	MongoDB  string
	RedisURL string

	BraintreeEnv        string
	BraintreeMerchantID string
	BraintreePublicKey  string
	BraintreePrivateKey string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	EmailTemplate string
	MailQueueSize int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "ecommerce"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		BraintreeEnv:        getEnv("BRAINTREE_ENV", "sandbox"),
		BraintreeMerchantID: os.Getenv("BRAINTREE_MERCHANT_ID"),
		BraintreePublicKey:  os.Getenv("BRAINTREE_PUBLIC_KEY"),
		BraintreePrivateKey: os.Getenv("BRAINTREE_PRIVATE_KEY"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		EmailTemplate: getEnv("EMAIL_TEMPLATE", "templates/order_confirmation.html"),
		MailQueueSize: getEnvInt("MAIL_QUEUE_SIZE", 64),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.BraintreeMerchantID == "" || cfg.BraintreePublicKey == "" || cfg.BraintreePrivateKey == "" {
		return nil, fmt.Errorf("braintree credentials are required")
	}
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("smtp credentials are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
