package models

type RideStatus string

const (
	StatusCreated   RideStatus = "created"
	StatusOngoing   RideStatus = "ongoing"
	StatusCompleted RideStatus = "completed"
	StatusCancelled RideStatus = "cancelled"
)

func (s RideStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// legalTransitions: created→ongoing, ongoing→completed, and any non-terminal
// ride can be cancelled. Completed and cancelled are terminal.
var legalTransitions = map[RideStatus][]RideStatus{
	StatusCreated: {StatusOngoing, StatusCancelled},
	StatusOngoing: {StatusCompleted, StatusCancelled},
}

func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Ride struct {
	RideID       int64      `gorm:"column:ride_id;primaryKey;autoIncrement" json:"ride_id"`
	PassengerID  int64      `gorm:"column:passenger_id;not null;index" json:"passenger_id"`
	DriverID     int64      `gorm:"column:driver_id;not null;index" json:"driver_id"`
	RideFrom     string     `gorm:"column:ride_from" json:"ride_from"`
	RideTo       string     `gorm:"column:ride_to" json:"ride_to"`
	ETA          int        `gorm:"column:eta" json:"eta"`
	FareEstimate int        `gorm:"column:fare_estimate" json:"fare_estimate"`
	Status       RideStatus `gorm:"type:varchar(20);not null;check:status IN ('created','ongoing','completed','cancelled')" json:"status"`

	Passenger *User `gorm:"foreignKey:PassengerID;references:UserID" json:"passenger,omitempty"`
	Driver    *User `gorm:"foreignKey:DriverID;references:UserID" json:"driver,omitempty"`
}
