package get_trainer_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainerService/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Поддерживаются: startDate, endDate (YYYY-MM-DD), status, includeInactive
func ToServiceRequest(trainerID, actorID int64, query url.Values) (*models.GetTrainerBookingsRequest, error) {
	req := &models.GetTrainerBookingsRequest{
		TrainerID: trainerID,
		ActorID:   actorID,
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
