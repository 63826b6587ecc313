// Package store owns all access to the users, rides and ratings tables.
// Callers never touch the gorm handle directly; every operation goes through
// one Store whose mutex serializes writers and readers alike.
package store

import (
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/henokhm/ride-hailing-bot/internal/models"
)

type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

// New migrates the schema and seeds the sentinel driver. Both steps are
// idempotent so reopening an existing database file is fine.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Ride{}, &models.Rating{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	sentinel := models.User{
		UserID:      models.SentinelDriverID,
		FullName:    "Unassigned Driver",
		PhoneNumber: "+2519123456",
		Role:        models.RoleDriver,
	}
	if err := db.Create(&sentinel).Error; err != nil {
		if translate(err) != ErrDuplicate {
			return nil, fmt.Errorf("seed sentinel driver: %w", err)
		}
		log.Println("sentinel driver already exists")
	}

	return &Store{db: db}, nil
}

func (s *Store) GetUser(id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u models.User
	if err := s.db.First(&u, "user_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(id int64, fullName, phoneNumber string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		UserID:      id,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
		Role:        role,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Delete(&models.User{}, "user_id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EditUser updates only the supplied fields; nil means keep the current value.
func (s *Store) EditUser(id int64, fullName, phoneNumber *string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u models.User
	if err := s.db.First(&u, "user_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	updates := map[string]any{}
	if fullName != nil {
		updates["full_name"] = *fullName
	}
	if phoneNumber != nil {
		updates["phone_number"] = *phoneNumber
	}
	if len(updates) == 0 {
		return &u, nil
	}

	if err := s.db.Model(&u).Updates(updates).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// CreateRide inserts a new ride with status "created" and the sentinel driver;
// a real driver arrives later through AssignDriver.
func (s *Store) CreateRide(passengerID int64, rideFrom, rideTo string, eta, fareEstimate int) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.Ride{
		PassengerID:  passengerID,
		DriverID:     models.SentinelDriverID,
		RideFrom:     rideFrom,
		RideTo:       rideTo,
		ETA:          eta,
		FareEstimate: fareEstimate,
		Status:       models.StatusCreated,
	}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// UpdateRideStatus moves a ride along the legal transition set; anything
// outside it is rejected with ErrIllegalTransition.
func (s *Store) UpdateRideStatus(rideID int64, status models.RideStatus) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return nil, ErrConstraint
	}

	var r models.Ride
	if err := s.db.First(&r, "ride_id = ?", rideID).Error; err != nil {
		return nil, translate(err)
	}
	if !r.Status.CanTransitionTo(status) {
		return nil, ErrIllegalTransition
	}

	if err := s.db.Model(&r).Update("status", status).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) AssignDriver(rideID, driverID int64) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r models.Ride
	if err := s.db.First(&r, "ride_id = ?", rideID).Error; err != nil {
		return nil, translate(err)
	}

	if err := s.db.Model(&r).Update("driver_id", driverID).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// GetRideHistory returns the user's finished rides (completed or cancelled,
// as passenger or driver), newest first. No rides is an empty slice.
func (s *Store) GetRideHistory(userID int64) ([]models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rides []models.Ride
	err := s.db.
		Where("(passenger_id = ? OR driver_id = ?)", userID, userID).
		Where("status IN ?", []models.RideStatus{models.StatusCompleted, models.StatusCancelled}).
		Order("ride_id DESC").
		Find(&rides).Error
	if err != nil {
		return nil, translate(err)
	}
	return rides, nil
}

func (s *Store) CreateRating(driverID, passengerID int64, ratingValue int, feedback string) (*models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ratingValue < 1 || ratingValue > 5 {
		return nil, ErrConstraint
	}

	r := models.Rating{
		DriverID:    driverID,
		PassengerID: passengerID,
		RatingValue: ratingValue,
		Feedback:    feedback,
	}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) GetDriverRatings(driverID int64) ([]models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ratings []models.Rating
	if err := s.db.Find(&ratings, "driver_id = ?", driverID).Error; err != nil {
		return nil, translate(err)
	}
	return ratings, nil
}
