package models

type Rating struct {
	RatingID    int64  `gorm:"column:rating_id;primaryKey;autoIncrement" json:"rating_id"`
	DriverID    int64  `gorm:"column:driver_id;not null;index" json:"driver_id"`
	PassengerID int64  `gorm:"column:passenger_id;not null;index" json:"passenger_id"`
	RatingValue int    `gorm:"column:rating_value;not null;check:rating_value BETWEEN 1 AND 5" json:"rating_value"`
	Feedback    string `gorm:"type:text" json:"feedback"`

	Driver    *User `gorm:"foreignKey:DriverID;references:UserID" json:"driver,omitempty"`
	Passenger *User `gorm:"foreignKey:PassengerID;references:UserID" json:"passenger,omitempty"`
}
