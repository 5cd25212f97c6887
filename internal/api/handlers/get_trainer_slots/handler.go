package get_trainer_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/slots
// Query params: date (optional, YYYY-MM-DD)
// Возвращает все слоты тренера, включая забронированные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Полное расписание видит только сам тренер
	actorID, err := handlers.UserIDFromRequest(r)
	if err != nil || actorID != trainerID {
		h.logger.Warn("GET /trainers/{id}/slots - Access denied: trainer_id=%d, actor_id=%d", trainerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Опциональный фильтр по дате
	var date *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/slots - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	result, err := h.service.GetTrainerSlots(r.Context(), trainerID, date)
	if err != nil {
		h.logger.Error("GET /trainers/{id}/slots - Failed to get slots: trainer_id=%d, error=%v", trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /trainers/{id}/slots - Slots retrieved successfully: trainer_id=%d, count=%d", trainerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
