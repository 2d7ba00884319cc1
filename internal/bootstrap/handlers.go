package bootstrap

import (
	"database/sql"

	"currency-converter/internal/api"
	"currency-converter/internal/config"
	"currency-converter/internal/handlers"
	"currency-converter/internal/kafka"
	"currency-converter/internal/repositories"
	"currency-converter/internal/services"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the connections made in main. Nil Redis, DB or Kafka
// disables the feature built on it.
type Dependencies struct {
	Config     *config.Config
	Logger     log.Logger
	Redis      *redis.Client
	DB         *sql.DB
	Kafka      *kafka.KafkaBundle
	Registerer prometheus.Registerer
}

type HandlersBundle struct {
	ConverterHandler   *handlers.ConverterHandler
	PreferencesHandler *handlers.PreferencesHandler
	UsageHandler       *handlers.UsageHandler
}

type BootstrapBundle struct {
	Handlers    *HandlersBundle
	Preferences *services.PreferencesService
	Usage       *services.UsageService
	Sessions    *services.SessionRegistry
	UsageRepo   *repositories.UsageRepository
}

func InitBootstrap(deps Dependencies) *BootstrapBundle {
	cfg, logger := deps.Config, deps.Logger

	var prefsRepo repositories.PreferencesRepository = repositories.NewMemoryPreferencesRepository()
	if deps.Redis != nil {
		prefsRepo = repositories.NewRedisPreferencesRepository(deps.Redis)
	}
	prefsService := services.NewPreferencesService(prefsRepo, cfg.DefaultLanguage)

	var (
		usageRepo *repositories.UsageRepository
		counter   services.PairCounter
		producer  kafka.ProducerInterface
	)
	if deps.DB != nil {
		usageRepo = repositories.NewUsageRepository(deps.DB)
		counter = usageRepo
	}
	if deps.Kafka != nil && deps.Kafka.ConversionProducer != nil {
		producer = deps.Kafka.ConversionProducer
	}
	usageService := services.NewUsageService(producer, counter, log.With(logger, "component", "usage"))

	client := api.NewRatesClient(cfg.RatesURL, cfg.RatesAccessKey)
	metrics := services.NewMetrics(deps.Registerer)
	converterLogger := log.With(logger, "component", "converter")
	sessions := services.NewSessionRegistry(func() services.Converter {
		var c services.Converter = services.NewRateConverter(client)
		c = services.NewLoggingConverter(converterLogger, c)
		return services.NewInstrumentingConverter(metrics, c)
	}, usageService)

	validate := validator.New()
	handlerLogger := log.With(logger, "component", "http")

	return &BootstrapBundle{
		Handlers: &HandlersBundle{
			ConverterHandler:   handlers.NewConverterHandler(sessions, validate, handlerLogger),
			PreferencesHandler: handlers.NewPreferencesHandler(prefsService, validate, handlerLogger),
			UsageHandler:       handlers.NewUsageHandler(usageService, handlerLogger),
		},
		Preferences: prefsService,
		Usage:       usageService,
		Sessions:    sessions,
		UsageRepo:   usageRepo,
	}
}
