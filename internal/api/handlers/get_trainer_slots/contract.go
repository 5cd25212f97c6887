package get_trainer_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTrainerSlots(ctx context.Context, trainerID int64, date *time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
