package get_availability

import "time"

// Request модель запроса расписания занятости объекта
type Request struct {
	FacilityID int64     // ID объекта
	From       time.Time // Начало окна (UTC)
	To         time.Time // Конец окна (UTC)
}

// Segment отрезок времени с постоянным числом свободных юнитов
type Segment struct {
	Start          time.Time
	End            time.Time
	AvailableUnits int
}

// Response расписание занятости объекта на окне [From, To)
type Response struct {
	FacilityID    int64
	CapacityUnits int
	From          time.Time
	To            time.Time
	Segments      []Segment
}
