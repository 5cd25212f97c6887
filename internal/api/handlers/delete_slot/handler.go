package delete_slot

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
	msgSlotBooked       = "слот забронирован и не может быть удален"
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

// Handle DELETE /api/v1/trainers/{trainerId}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Расписанием управляет только сам тренер
	actorID, err := handlers.UserIDFromRequest(r)
	if err != nil || actorID != trainerID {
		h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Access denied: trainer_id=%d, actor_id=%d", trainerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Удаляем слот
	if err := h.service.DeleteSlot(r.Context(), trainerID, slotID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Access denied: trainer_id=%d, slot_id=%d", trainerID, slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrSlotAlreadyBooked):
			h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Slot already booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /trainers/{id}/slots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("DELETE /trainers/{id}/slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /trainers/{id}/slots/{id} - Slot deleted successfully: trainer_id=%d, slot_id=%d", trainerID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
