package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTokenTTLSeconds = 18000000
	defaultOTPTTLMinutes   = 10
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	BaseURL     string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AccessSecret string
	TokenTTL     time.Duration
	OTPTTL       time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	MailSubject  string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		BaseURL:     os.Getenv("BASE_URL"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:  os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		AccessSecret: os.Getenv("ACCESS_SECRET"),
		TokenTTL:     envSeconds("TOKEN_TTL_SECONDS", defaultTokenTTLSeconds),
		OTPTTL:       envMinutes("OTP_TTL_MINUTES", defaultOTPTTLMinutes),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: os.Getenv("MAIL_FROM_NAME"),
		MailSubject:  os.Getenv("MAIL_SUBJECT"),
	}
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}

func envMinutes(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Minute
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return n
}
