package release_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerService/internal/service/schedule"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidSlotID    = "некорректный ID слота"
	msgForbidden        = "доступ запрещен"
	msgSlotNotFound     = "слот не найден"
	msgSlotNotBooked    = "слот не забронирован"
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

// Handle PATCH /api/v1/trainers/{trainerId}/slots/{slotId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Слот освобождает только сам тренер
	actorID, err := handlers.UserIDFromRequest(r)
	if err != nil || actorID != trainerID {
		h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Access denied: trainer_id=%d, actor_id=%d", trainerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Освобождаем слот
	if err := h.service.ReleaseSlot(r.Context(), trainerID, slotID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Access denied: trainer_id=%d, slot_id=%d", trainerID, slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrSlotNotBooked):
			h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Slot not booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotNotBooked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PATCH /trainers/{id}/slots/{id}/release - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("PATCH /trainers/{id}/slots/{id}/release - Failed to release slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /trainers/{id}/slots/{id}/release - Slot released successfully: trainer_id=%d, slot_id=%d", trainerID, slotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
