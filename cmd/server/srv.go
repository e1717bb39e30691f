package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/mroshb/raffle_api/internal/config"
	"github.com/mroshb/raffle_api/internal/database"
	"github.com/mroshb/raffle_api/internal/handlers"
	"github.com/mroshb/raffle_api/internal/notify"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/internal/storage"
	"github.com/mroshb/raffle_api/pkg/logger"
	"gorm.io/gorm"
)

type srv struct {
	cfg      *config.Config
	db       *gorm.DB
	storage  storage.Storage
	notifier notify.Notifier

	transactor      *repositories.Transactor
	userRepo        *repositories.UserRepository
	raffleRepo      *repositories.RaffleRepository
	ticketRepo      *repositories.TicketRepository
	transactionRepo *repositories.TransactionRepository
	clientRepo      *repositories.ClientRepository

	handlers *handlers.HandlerManager
}

func (s *srv) loadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg

	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			return fmt.Errorf("production security validation failed: %w", err)
		}
		logger.Info("Production security validation passed")
	}
	return nil
}

func (s *srv) loadDatabase() error {
	db, err := database.Connect(s.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *srv) loadRepos() {
	s.transactor = repositories.NewTransactor(s.db)
	s.userRepo = repositories.NewUserRepository(s.db)
	s.raffleRepo = repositories.NewRaffleRepository(s.db)
	s.ticketRepo = repositories.NewTicketRepository(s.db)
	s.transactionRepo = repositories.NewTransactionRepository(s.db)
	s.clientRepo = repositories.NewClientRepository(s.db)
}

func (s *srv) loadStorage() error {
	store, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:       s.cfg.S3Endpoint,
		Region:         s.cfg.S3Region,
		AccessKey:      s.cfg.S3AccessKey,
		SecretKey:      s.cfg.S3SecretKey,
		Bucket:         s.cfg.S3Bucket,
		PublicEndpoint: s.cfg.S3PublicEndpoint,
		SSLDisabled:    s.cfg.S3SSLDisabled,
	})
	if err != nil {
		return err
	}
	s.storage = store
	return nil
}

func (s *srv) loadNotifier() {
	if s.cfg.TelegramBotToken == "" {
		s.notifier = notify.Noop{}
		return
	}
	bot, err := notify.NewTelegram(s.cfg.TelegramBotToken, s.cfg.TelegramAdminChatID, s.cfg.IsDevelopment())
	if err != nil {
		logger.Warn("Telegram notifications disabled", "error", err)
		s.notifier = notify.Noop{}
		return
	}
	s.notifier = bot
}

func (s *srv) loadHandlers() {
	s.handlers = handlers.NewHandlerManager(
		s.cfg,
		s.userRepo,
		services.NewPurchaseService(s.transactor, s.userRepo, s.raffleRepo, s.ticketRepo, s.transactionRepo, s.notifier),
		services.NewTicketService(s.ticketRepo),
		services.NewRaffleService(s.raffleRepo, s.storage, s.cfg.UploadMaxSize),
		services.NewUserService(s.transactor, s.userRepo, s.transactionRepo, s.cfg.JWTSecret, s.cfg.GetTokenTTL()),
		services.NewTransactionService(s.transactionRepo, s.userRepo),
		services.NewClientService(s.clientRepo),
	)
}

func (s *srv) ensureAdmin() error {
	created, err := database.EnsureAdmin(s.db, s.cfg.AdminUsername, s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if created {
		logger.Info("Admin account created", "username", s.cfg.AdminUsername)
	}
	return nil
}

func (s *srv) close() {
	if s.notifier != nil {
		s.notifier.Close()
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	logger.Sync()
}
