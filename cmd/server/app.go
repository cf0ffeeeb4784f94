package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"krishi/config"
	"krishi/database"
	"krishi/pkg/ai"
	"krishi/pkg/classifier"
	"krishi/pkg/cropcal"
	"krishi/pkg/middleware"
	"krishi/pkg/notify"
	"krishi/router"
	"krishi/web"

	// Activity log
	actCtrlImp "krishi/pkg/activity/controllerImp"
	actRepoImp "krishi/pkg/activity/repositoryImp"

	// Advisory
	advCtrlImp "krishi/pkg/advisory/controllerImp"
	advSvcImp "krishi/pkg/advisory/serviceImp"
	"krishi/pkg/weather"

	// Auth + farmers
	authCtrlImp "krishi/pkg/auth/controllerImp"
	authRepoImp "krishi/pkg/auth/repositoryImp"
	authSvcImp "krishi/pkg/auth/serviceImp"
	farmerRepoImp "krishi/pkg/farmer/repositoryImp"
	farmerSvcImp "krishi/pkg/farmer/serviceImp"

	// Diagnosis + Q&A
	diagCtrlImp "krishi/pkg/diagnosis/controllerImp"
	diagSvcImp "krishi/pkg/diagnosis/serviceImp"
	qaCtrlImp "krishi/pkg/qa/controllerImp"
	qaSvcImp "krishi/pkg/qa/serviceImp"

	// Schedule + reminders
	reminderSvc "krishi/pkg/reminder/service"
	reminderSvcImp "krishi/pkg/reminder/serviceImp"
	schedCtrlImp "krishi/pkg/schedule/controllerImp"
	schedRepoImp "krishi/pkg/schedule/repositoryImp"
	schedSvcImp "krishi/pkg/schedule/serviceImp"

	// Health
	healthCtrlImp "krishi/pkg/health/controllerImp"
)

type app struct {
	cfg        config.AppConfig
	log        *zap.Logger
	db         *gorm.DB
	echo       *echo.Echo
	reminders  reminderSvc.ReminderService
	classifier *classifier.Service
	closers    []func()
}

// openStore opens the database and seeds the rule table on first use.
func openStore(cfg config.AppConfig, log *zap.Logger) (*gorm.DB, int, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, 0, err
	}
	rules := cropcal.DefaultRules()
	if cfg.ScheduleRulesFile != "" {
		if rules, err = cropcal.LoadRulesFile(cfg.ScheduleRulesFile); err != nil {
			closeDB(db)
			return nil, 0, fmt.Errorf("schedule rules: %w", err)
		}
	}
	n, err := database.SeedScheduleRules(db, rules)
	if err != nil {
		closeDB(db)
		return nil, 0, err
	}
	if n > 0 {
		log.Info("seeded schedule rules", zap.Int("rules", n), zap.String("file", cfg.ScheduleRulesFile))
	}
	return db, n, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newNotifier always logs; Redis and MQTT are added when configured and
// reachable.
func newNotifier(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (notify.Notifier, []func()) {
	ns := []notify.Notifier{notify.NewLog(log)}
	var closers []func()
	if cfg.RedisAddr != "" {
		rs, err := notify.NewRedisStream(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisStream)
		if err != nil {
			log.Warn("redis reminders disabled", zap.Error(err))
		} else {
			ns = append(ns, rs)
			closers = append(closers, func() { _ = rs.Close() })
		}
	}
	if cfg.MQTTBroker != "" {
		mq, err := notify.NewMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if err != nil {
			log.Warn("mqtt reminders disabled", zap.Error(err))
		} else {
			ns = append(ns, mq)
			closers = append(closers, mq.Close)
		}
	}
	return notify.Multi(ns...), closers
}

func newReminderService(ctx context.Context, db *gorm.DB, cfg config.AppConfig, log *zap.Logger) (reminderSvc.ReminderService, []func()) {
	notifier, closers := newNotifier(ctx, cfg, log)
	svc := reminderSvcImp.NewReminderService(
		schedRepoImp.NewRuleRepository(db), schedRepoImp.NewCropEventRepository(db), notifier, log.Named("reminder"))
	return svc, closers
}

// newRenderer is replaced in tests.
var newRenderer = web.NewRenderer

// newApp builds the server. Anything opened before a failing step is closed.
func newApp(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init(ctx context.Context) error {
	cfg, log := a.cfg, a.log
	db, _, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	a.db = db

	// Remote model, falling back to disabled
	llm, err := ai.New(ctx, ai.Options{
		Provider:     cfg.LLMProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		Endpoint:     cfg.LLMEndpoint,
		APIKey:       cfg.LLMAPIKey,
		Model:        cfg.LLMModel,
	})
	if err != nil {
		log.Warn("LLM client unavailable", zap.Error(err))
		llm = ai.NewDisabled()
	}
	a.classifier = classifier.Load(cfg.ModelPath, cfg.LabelsPath, cfg.ONNXLibPath, log)
	a.closers = append(a.closers, func() { _ = a.classifier.Close() })

	// Repos
	farmers := farmerRepoImp.New(db)
	sessionsRepo := authRepoImp.New(db)
	rules := schedRepoImp.NewRuleRepository(db)
	events := schedRepoImp.NewCropEventRepository(db)
	activities := actRepoImp.New(db)

	// Services
	sessions := authSvcImp.NewSessionService(sessionsRepo, farmers, cfg.SessionTTL)
	if n, err := sessions.Prune(ctx); err != nil {
		log.Warn("prune sessions", zap.Error(err))
	} else if n > 0 {
		log.Info("pruned expired sessions", zap.Int64("sessions", n))
	}
	farmSvc := schedSvcImp.NewFarmService(rules, events, log)
	diagSvc := diagSvcImp.NewDiagnosisService(llm, a.classifier, activities,
		diagSvcImp.Options{Timeout: cfg.DiagnosisTimeout, Threshold: cfg.ConfidenceThreshold}, log.Named("diagnosis"))
	qaSvc := qaSvcImp.NewQAService(llm, activities, log.Named("qa"))
	advSvc := advSvcImp.NewAdvisoryService(weather.New(cfg.WeatherEndpoint, cfg.WeatherAPIKey), llm, log.Named("advisory"))
	var closers []func()
	a.reminders, closers = newReminderService(ctx, db, cfg, log)
	a.closers = append(a.closers, closers...)

	// Echo
	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))
	e.Use(echoMiddleware.BodyLimit("12M"))

	a.echo = router.New(e, sessions, router.Handlers{
		Auth: authCtrlImp.NewAuthController(farmerSvcImp.NewFarmerService(farmers), sessions,
			authSvcImp.NewGoogleVerifier(cfg.GoogleClientID), farmSvc,
			authCtrlImp.Options{CookieSecure: cfg.CookieSecure, GoogleClientID: cfg.GoogleClientID}, log),
		Diagnosis: diagCtrlImp.New(diagSvc),
		QA:        qaCtrlImp.New(qaSvc),
		Farm:      schedCtrlImp.New(farmSvc),
		Activity:  actCtrlImp.New(activities),
		Advisory:  advCtrlImp.New(advSvc),
		Health:    healthCtrlImp.NewHealthCtrl(db, a.classifier, llm.Configured),
	})
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if a.db != nil {
		closeDB(a.db)
	}
}
