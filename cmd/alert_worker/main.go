package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/config"
	"github.com/oksasatya/moodwatch/pkg/helpers"
	"github.com/oksasatya/moodwatch/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-alert-worker", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; alert worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQAlertQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" || cfg.CareTeamEmail == "" {
		logger.Fatal("Mailgun or CARE_TEAM_EMAIL not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQAlertQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp connect failed")
	}

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume failed")
	}

	dispatcher := &mailer.AlertDispatcher{
		Sender:  mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		To:      cfg.CareTeamEmail,
		AppName: cfg.AppName,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err := dispatcher.Handle(c, msg.Body)
			cancel()

			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, mailer.ErrBadPayload):
				logger.WithError(err).Warn("dropping alert job")
				_ = msg.Nack(false, false)
			default:
				logger.WithError(err).WithFields(logrus.Fields{"redelivered": msg.Redelivered}).Warn("alert send failed, requeueing")
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	logger.Infof("alert worker listening on queue=%s", cfg.RabbitMQAlertQueue)
	<-stop
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
