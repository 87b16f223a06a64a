package main

import (
	"log"

	"github.com/Sorawitt/account-svc/config"
	"github.com/Sorawitt/account-svc/infra/queue"
	"github.com/Sorawitt/account-svc/internal/mail"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("Mail Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mailService := mail.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.MailSubject,
	)

	handler := mail.NewHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	log.Println("Mail Service listening for events...")
	consumer.Listen()
}
