package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/service"
)

// Controller HTTP-слой админки: маршруты, проверка сессии, разбор запросов
type Controller struct {
	clubService     *service.ClubService
	scheduleService *service.ScheduleService
	reportService   *service.ReportService
	sessionCfg      SessionConfig
	validate        *validator.Validate
	logger          *zap.Logger
}

func New(
	clubService *service.ClubService,
	scheduleService *service.ScheduleService,
	reportService *service.ReportService,
	sessionCfg SessionConfig,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		clubService:     clubService,
		scheduleService: scheduleService,
		reportService:   reportService,
		sessionCfg:      sessionCfg,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Router собирает маршрутизатор со всеми эндпоинтами
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.loggingMiddleware)

	// Открытые маршруты
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Всё под /api требует сессию
	api := router.PathPrefix("/api").Subrouter()
	api.Use(c.authMiddleware)

	// Клубы
	api.HandleFunc("/club", c.handleGetClub).Methods(http.MethodGet)
	api.HandleFunc("/clubs", c.handleCreateClub).Methods(http.MethodPost)

	// Команды
	api.HandleFunc("/teams", c.handleListTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams", c.handleCreateTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id}", c.handleUpdateTeam).Methods(http.MethodPut)
	api.HandleFunc("/teams/{id}", c.handleDeleteTeam).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{id}/activities", c.handleListTeamActivities).Methods(http.MethodGet)

	// Игроки
	api.HandleFunc("/players", c.handleListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players", c.handleCreatePlayer).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", c.handleUpdatePlayer).Methods(http.MethodPut)
	api.HandleFunc("/players/{id}/deactivate", c.handleDeactivatePlayer).Methods(http.MethodPost)

	// События расписания
	api.HandleFunc("/activities", c.handleCreateActivity).Methods(http.MethodPost)
	api.HandleFunc("/activities/{id}", c.handleUpdateActivity).Methods(http.MethodPut)
	api.HandleFunc("/activities/{id}", c.handleDeleteActivity).Methods(http.MethodDelete)

	// Календарь
	api.HandleFunc("/schedule/calendar", c.handleMonthCalendar).Methods(http.MethodGet)
	api.HandleFunc("/schedule/calendar.png", c.handleMonthCalendarImage).Methods(http.MethodGet)

	// Посещаемость и оплата
	api.HandleFunc("/attendance", c.handleListAttendance).Methods(http.MethodGet)
	api.HandleFunc("/attendance", c.handleMarkAttendance).Methods(http.MethodPost)
	api.HandleFunc("/attendance/{id}", c.handleDeleteAttendance).Methods(http.MethodDelete)
	api.HandleFunc("/payments", c.handleSetPaymentStatus).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/payments", c.handleListPlayerPayments).Methods(http.MethodGet)

	// Отчёты
	api.HandleFunc("/reports/attendance", c.handleAttendanceReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/payments", c.handlePaymentReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/analytics", c.handleAnalyticsOverview).Methods(http.MethodGet)

	return router
}

func (c *Controller) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
