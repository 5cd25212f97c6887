package release_slot

import "context"

type ScheduleService interface {
	ReleaseSlot(ctx context.Context, trainerID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
