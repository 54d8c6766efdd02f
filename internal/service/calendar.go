package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
)

const maxCalendarRange = 366 * 24 * time.Hour

type CalendarServiceImpl struct {
	appointmentRepo repository.AppointmentRepository
	holidayRepo     repository.HolidayRepository
	settings        SettingsService
	logger          *zap.Logger
}

func NewCalendarService(
	appointmentRepo repository.AppointmentRepository,
	holidayRepo repository.HolidayRepository,
	settings SettingsService,
	logger *zap.Logger,
) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		appointmentRepo: appointmentRepo,
		holidayRepo:     holidayRepo,
		settings:        settings,
		logger:          logger,
	}
}

// Events returns appointments overlapping [query.Start, query.End) followed by holidays as all-day events.
func (s *CalendarServiceImpl) Events(ctx context.Context, query domain.CalendarQuery) ([]domain.CalendarEvent, error) {
	if !query.End.After(query.Start) {
		return nil, domain.ValidationError("конец периода должен быть позже начала")
	}
	if query.End.Sub(query.Start) > maxCalendarRange {
		return nil, domain.ValidationError("период календаря не может превышать один год")
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := settings.Location()

	appointments, err := s.appointmentRepo.ListRange(ctx, query)
	if err != nil {
		s.logger.Error("ошибка получения записей для календаря", zap.Error(err))
		return nil, errors.New("ошибка при получении календаря")
	}

	events := make([]domain.CalendarEvent, 0, len(appointments))
	for _, a := range appointments {
		employeeID := a.EmployeeID
		events = append(events, domain.CalendarEvent{
			ID:         a.ID,
			Kind:       domain.CalendarEventAppointment,
			Title:      appointmentTitle(a),
			Start:      a.StartAt.In(loc),
			End:        a.EndAt.In(loc),
			Status:     a.Status,
			EmployeeID: &employeeID,
			Color:      a.ServiceColor,
		})
	}

	start, end := query.Start.In(loc), query.End.In(loc)
	holidays, err := s.holidayRepo.List(ctx, domain.HolidayFilter{
		LocationID: query.LocationID,
		From:       &start,
		To:         &end,
	})
	if err != nil {
		s.logger.Error("ошибка получения выходных для календаря", zap.Error(err))
		return nil, errors.New("ошибка при получении календаря")
	}

	return append(events, holidayEvents(holidays, start, end)...), nil
}

func holidayEvents(holidays []domain.Holiday, start, end time.Time) []domain.CalendarEvent {
	var events []domain.CalendarEvent

	loc := start.Location()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		for _, h := range holidays {
			if !h.OccursOn(day) {
				continue
			}
			events = append(events, domain.CalendarEvent{
				ID:     h.ID,
				Kind:   domain.CalendarEventHoliday,
				Title:  h.Name,
				Start:  day,
				End:    day.AddDate(0, 0, 1),
				AllDay: true,
			})
		}
	}

	return events
}

func appointmentTitle(a domain.Appointment) string {
	switch {
	case a.ServiceName != "" && a.CustomerName != "":
		return a.ServiceName + " - " + a.CustomerName
	case a.ServiceName != "":
		return a.ServiceName
	default:
		return a.CustomerName
	}
}
