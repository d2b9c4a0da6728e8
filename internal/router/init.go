package router

import (
	"github.com/oksasatya/moodwatch/internal/application"
	"github.com/oksasatya/moodwatch/internal/container"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
	"github.com/oksasatya/moodwatch/internal/infrastructure/archive"
	"github.com/oksasatya/moodwatch/internal/infrastructure/gemini"
	"github.com/oksasatya/moodwatch/internal/infrastructure/search"
	handlers "github.com/oksasatya/moodwatch/internal/interface/http"
	"github.com/oksasatya/moodwatch/internal/router/modules"
)

// Services groups what the HTTP modules need; built once from the container.
type Services struct {
	Users  *application.UserService
	Chat   *application.ChatService
	Moods  *application.MoodService
	Social *application.SocialService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetRecordStore()
	gw := container.GetGateway()
	opts := gemini.OptionsFromConfig(cfg)
	scorer := signal.NewScorer(cfg.UrgencyThreshold)

	var classifier application.MessageClassifier
	if cfg.AIClassifyEnabled {
		classifier = gemini.NewClassifier(gw, opts, scorer)
	}

	var archiver application.AnalysisArchiver
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		archiver = archive.NewGCSArchive(gcs, cfg.GCSBucket)
	}

	var publisher application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		publisher = pub
	}

	var indexer application.PostIndexer
	if es := container.GetES(); es != nil {
		indexer = search.NewPostIndex(es, cfg.ESPostsIndex)
	}

	return Services{
		Users:  application.NewUserService(container.GetUserRepo(), container.GetJWT(), container.GetRedis(), logger),
		Chat:   application.NewChatService(store, gw, opts, scorer, classifier, cfg.ChatContextWindow, cfg.GatewayTimeout, logger),
		Moods:  application.NewMoodService(store, gw, opts, archiver, cfg.GatewayTimeout, logger),
		Social: application.NewSocialService(store, container.GetUserRepo(), scorer, publisher, indexer, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	svc := buildServices()
	jwt := container.GetJWT()
	rdb := container.GetRedis()

	var db modules.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.Add(modules.NewDebugModule(rdb, db))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure), jwt, rdb))
	r.Add(modules.NewMessageModule(handlers.NewMessageHandler(svc.Chat), jwt, rdb))
	r.Add(modules.NewMoodModule(handlers.NewMoodHandler(svc.Moods), jwt, rdb))
	r.Add(modules.NewSocialModule(handlers.NewSocialHandler(svc.Social), jwt, rdb))
}
