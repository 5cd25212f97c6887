package create_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerService/internal/service/schedule"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgTrainerNotFound    = "тренер не найден"
	msgInvalidRange       = "некорректный временной интервал слота"
	msgOverlappingSlot    = "слот пересекается с существующим расписанием"
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

// Handle POST /api/v1/trainers/{trainerId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем trainerId из URL
	vars := mux.Vars(r)
	trainerIDStr := vars["trainerId"]

	trainerID, err := strconv.ParseInt(trainerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Расписанием управляет только сам тренер
	actorID, err := handlers.UserIDFromRequest(r)
	if err != nil || actorID != trainerID {
		h.logger.Warn("POST /trainers/{id}/slots - Access denied: trainer_id=%d, actor_id=%d", trainerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Декодируем body
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем слот
	result, err := h.service.CreateSlot(r.Context(), req.ToServiceRequest(trainerID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTrainerNotFound):
			h.logger.Warn("POST /trainers/{id}/slots - Trainer not found: trainer_id=%d", trainerID)
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, schedule.ErrInvalidRange), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/slots - Invalid slot range: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, schedule.ErrOverlappingSlot):
			h.logger.Warn("POST /trainers/{id}/slots - Overlapping slot: trainer_id=%d", trainerID)
			handlers.RespondConflict(w, msgOverlappingSlot)

		default:
			h.logger.Error("POST /trainers/{id}/slots - Failed to create slot: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/slots - Slot created successfully: trainer_id=%d, slot_id=%d", trainerID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
