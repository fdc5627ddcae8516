package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthtrack/config"
	"healthtrack/jobs"
	"healthtrack/llm"
	"healthtrack/logger"
	"healthtrack/repository"
	"healthtrack/routes"
	"healthtrack/services"
	"healthtrack/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	if envErr != nil {
		log.Warn("no .env file loaded", zap.Error(envErr))
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg.Database)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	gen, err := llm.New(cfg.LLM)
	if err != nil {
		log.Warn("text generation disabled, AI features use fallbacks", zap.Error(err))
		gen = nil
	}
	analyzer := services.NewNutritionAnalyzer(gen, cfg.LLM.Timeout, log.Named("analyzer"))

	ctx := context.Background()

	var (
		awsCfg      aws.Config
		modelStore  services.ObjectGetter
		photoStore  services.PhotoStore
		mailer      services.MailSender
		push        *services.PushService
		recognition *services.RecognitionService
	)
	if cfg.AWSEnabled() {
		awsCfg, err = utils.LoadAWSConfig(ctx, cfg.AWS.Region)
		if err != nil {
			log.Fatal("aws config load failed", zap.Error(err))
		}
		s3Cfg := awsCfg.Copy()
		s3Cfg.Region = cfg.AWS.S3Region
		store := utils.NewS3Store(s3Cfg, cfg.AWS.PhotoBucket, cfg.AWS.CloudFrontURL)
		modelStore = store
		if cfg.AWS.PhotoBucket != "" {
			photoStore = store
		}
		if cfg.AWS.SESSender != "" {
			mailer = utils.NewMailer(awsCfg, cfg.AWS.SESSender)
		}
		if cfg.AWS.SNSPlatformARN != "" {
			push = services.NewPushService(db, awsCfg, cfg.AWS.SNSPlatformARN, log.Named("push"))
		}
		if cfg.AWS.EnableRekognize {
			recognition = services.NewRecognitionService(awsCfg, photoStore, analyzer, log.Named("recognition"))
		}
	}

	model := services.LoadCalorieModel(ctx, modelStore, cfg.Model.S3Bucket, cfg.Model.S3Key, cfg.Model.Path, log)
	predictor := services.NewCaloriePredictor(model)

	repo := repository.NewHealthLogRepository(db)
	aggregator := services.NewDailyAggregator(repo)
	suggestions := services.NewSuggestionEngine()
	users := services.NewUserService(db, cfg.JWTSecret)
	hub := services.NewRealtimeHub(log.Named("realtime"))
	notifier := services.NewNotifier(hub, push, log.Named("notifier"))
	dashboard := services.NewDashboardService(repo, aggregator, suggestions, predictor, users, notifier, log.Named("dashboard"))
	logs := services.NewHealthLogService(repo, analyzer)
	logs.SetPublisher(dashboard)
	insights := services.NewInsightsService(db, aggregator, analyzer, users, mailer, log.Named("insights"))

	if cfg.Scheduler.Enabled {
		s, err := jobs.Start(cfg.Scheduler, jobs.Deps{
			Users:    users,
			Insights: insights,
			Digest:   dashboard,
			Log:      log.Named("jobs"),
		})
		if err != nil {
			log.Fatal("scheduler start failed", zap.Error(err))
		}
		defer func() { _ = s.Shutdown() }()
	}

	r := routes.SetupRouter(routes.Deps{
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
		Users:       users,
		Logs:        logs,
		Dashboard:   dashboard,
		Insights:    insights,
		Analyzer:    analyzer,
		Recognition: recognition,
		Push:        push,
		Hub:         hub,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.Bool("ai_available", analyzer.Available()), zap.Bool("calorie_model", predictor.HasModel()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
