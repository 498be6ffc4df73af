package di

import (
	"time"

	"go.uber.org/zap"

	authUseCase "go-bulk-messaging-dashboard/src/application/usecases/auth"
	"go-bulk-messaging-dashboard/src/application/usecases/bulksend"
	contactsUseCase "go-bulk-messaging-dashboard/src/application/usecases/contacts"
	"go-bulk-messaging-dashboard/src/domain/campaign"
	"go-bulk-messaging-dashboard/src/domain/common"
	"go-bulk-messaging-dashboard/src/infrastructure/alerting"
	"go-bulk-messaging-dashboard/src/infrastructure/broadcaster"
	"go-bulk-messaging-dashboard/src/infrastructure/helper"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"
	"go-bulk-messaging-dashboard/src/infrastructure/repository/auditlog"
	"go-bulk-messaging-dashboard/src/infrastructure/repository/mysql"
	historyRepo "go-bulk-messaging-dashboard/src/infrastructure/repository/mysql/history"
	"go-bulk-messaging-dashboard/src/infrastructure/repository/mysql/user"
	authController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/auth"
	contactsController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/contacts"
	historyController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/history"
	logsController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/logs"
	sendController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/send"
	statusController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/status"
	"go-bulk-messaging-dashboard/src/infrastructure/security"
	"go-bulk-messaging-dashboard/src/infrastructure/storage"
	"go-bulk-messaging-dashboard/src/infrastructure/utils"
	"go-bulk-messaging-dashboard/src/infrastructure/whatsapp"

	"gorm.io/gorm"
)

// ApplicationContext holds all application dependencies and services
type ApplicationContext struct {
	DB                 *gorm.DB
	Logger             *logger.Logger
	AuthEnabled        bool
	StatusController   statusController.IStatusController
	ContactsController contactsController.IContactsController
	SendController     sendController.ISendController
	LogsController     logsController.ILogsController
	HistoryController  historyController.IHistoryController
	AuthController     authController.IAuthController
	CommonService      common.CommonService
	JWTService         security.IJWTService
	UserRepository     user.UserRepositoryInterface
	AuthUseCase        authUseCase.IAuthUseCase
	HistoryRepository  historyRepo.HistoryRepositoryInterface
	Orchestrator       *bulksend.Orchestrator
	ChannelManager     *whatsapp.ChannelManager
	Hub                *broadcaster.Hub
	AuditLog           *auditlog.FileAuditLog
	Storage            *storage.TransientStorage
	WhatsAppClient     *whatsapp.WhatsAppClient
	Stop               chan struct{}
}

// SetupDependencies creates a new application context with all dependencies
func SetupDependencies(loggerInstance *logger.Logger) (*ApplicationContext, error) {
	appContext := &ApplicationContext{
		Logger: loggerInstance,
		Stop:   make(chan struct{}),
	}

	validator := helper.NewValidator(loggerInstance)
	appContext.CommonService = common.NewCommonService(validator)

	// The database is optional: without DB configuration the dashboard
	// still runs, with auth and delivery history disabled.
	if mysql.Configured() {
		db, err := mysql.InitDB(loggerInstance)
		if err != nil {
			return nil, err
		}
		appContext.DB = db
		appContext.HistoryRepository = historyRepo.NewHistoryRepository(db, loggerInstance)
		appContext.UserRepository = user.NewUserRepository(db, loggerInstance)

		appContext.JWTService = security.NewJWTService()
		appContext.AuthUseCase = authUseCase.NewAuthUseCase(appContext.UserRepository, appContext.JWTService, loggerInstance)
		appContext.AuthController = authController.NewAuthController(appContext.AuthUseCase, appContext.CommonService, loggerInstance)
		appContext.AuthEnabled = utils.GetEnv("AUTH_ENABLED", "true") == "true"
		appContext.HistoryController = historyController.NewHistoryController(appContext.HistoryRepository, loggerInstance)
	} else {
		loggerInstance.Info("No database configured, auth and delivery history are disabled")
	}

	// WhatsApp bridge connection
	session := utils.GetEnv("WA_SESSION", "default")
	bridgeAddress := utils.GetEnv("WA_BRIDGE_ADDRESS", "127.0.0.1:6001")
	waClient := whatsapp.NewWhatsAppClient(session, loggerInstance)
	if err := waClient.Init(bridgeAddress); err != nil {
		return nil, err
	}
	appContext.WhatsAppClient = waClient

	// Alerting is optional; a missing config file disables it.
	alertingConfig, err := alerting.LoadConfig(utils.GetEnv("ALERTING_CONFIG_PATH", "config/alerting.yml"))
	if err != nil {
		loggerInstance.Warn("Couldn't load alerting configuration, alerting disabled", zap.Error(err))
		alertingConfig = nil
	}

	// The hub needs the channel manager's snapshot for late subscribers
	// and the manager publishes through the hub; the closure breaks the
	// construction cycle.
	hub := broadcaster.NewHub(func() campaign.StatusPayload {
		if appContext.ChannelManager == nil {
			return campaign.StatusPayload{}
		}
		return appContext.ChannelManager.Status()
	}, loggerInstance)
	appContext.Hub = hub

	events := alerting.NewNotifier(hub, alertingConfig, loggerInstance)

	channelManager := whatsapp.NewChannelManager(waClient, events, loggerInstance)
	appContext.ChannelManager = channelManager

	go hub.Run(appContext.Stop)

	notifications, _, err := waClient.Notifications()
	if err != nil {
		return nil, err
	}
	go channelManager.HandleNotifications(notifications, appContext.Stop)

	// Transient media storage and the date-partitioned audit log
	transientStorage, err := storage.NewTransientStorage(utils.GetEnv("MEDIA_TMP_DIR", "uploads"), loggerInstance)
	if err != nil {
		return nil, err
	}
	appContext.Storage = transientStorage

	auditLog, err := auditlog.NewFileAuditLog(utils.GetEnv("MESSAGE_LOG_DIR", "logs"), loggerInstance)
	if err != nil {
		return nil, err
	}
	appContext.AuditLog = auditLog

	// Orchestrator and its collaborators
	normalizer := bulksend.NewNumberNormalizer(
		utils.GetEnv("WA_DEFAULT_COUNTRY_CODE", bulksend.DefaultCountryCode),
		utils.GetEnv("WA_ADDRESS_SUFFIX", bulksend.DefaultAddressSuffix),
	)

	var history campaign.HistoryRecorder
	if appContext.HistoryRepository != nil {
		history = appContext.HistoryRepository
	}

	mediaGrace := time.Duration(utils.GetEnvInt("MEDIA_GRACE_SECONDS", 60)) * time.Second
	orchestrator := bulksend.NewOrchestrator(
		channelManager,
		auditLog,
		events,
		history,
		normalizer,
		transientStorage,
		mediaGrace,
		loggerInstance,
	)
	appContext.Orchestrator = orchestrator

	// Controllers
	extractor := contactsUseCase.NewContactExtractor(loggerInstance)
	appContext.StatusController = statusController.NewStatusController(channelManager, loggerInstance)
	appContext.ContactsController = contactsController.NewContactsController(extractor, loggerInstance)
	appContext.SendController = sendController.NewSendController(orchestrator, transientStorage, loggerInstance)
	appContext.LogsController = logsController.NewLogsController(auditLog, loggerInstance)

	return appContext, nil
}

// Shutdown stops the background goroutines and closes the bridge
// connection.
func (appContext *ApplicationContext) Shutdown() {
	close(appContext.Stop)
	if appContext.WhatsAppClient != nil {
		if err := appContext.WhatsAppClient.Close(); err != nil {
			appContext.Logger.Warn("Error closing WhatsApp bridge connection", zap.Error(err))
		}
	}
}

// NewTestApplicationContext creates an application context for testing with mocked dependencies
func NewTestApplicationContext(
	mockUserRepo user.UserRepositoryInterface,
	mockJWTService security.IJWTService,
	loggerInstance *logger.Logger,
) *ApplicationContext {
	authUC := authUseCase.NewAuthUseCase(mockUserRepo, mockJWTService, loggerInstance)
	commonService := common.NewCommonService(helper.NewValidator(loggerInstance))

	return &ApplicationContext{
		Logger:         loggerInstance,
		AuthController: authController.NewAuthController(authUC, commonService, loggerInstance),
		CommonService:  commonService,
		JWTService:     mockJWTService,
		UserRepository: mockUserRepo,
		AuthUseCase:    authUC,
	}
}
