package model

import "time"

// DefaultOwnerWindow is the reservation window given to spots created directly
// with an owner by an administrator.
const DefaultOwnerWindow = 1

// MaxHoursReserved caps a single reservation at 30 days.
const MaxHoursReserved = 720

// Spot represents a single parking space and its reservation state.
// A nil UserID means the spot has no owner.
type Spot struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	IsReserved    bool      `json:"is_reserved" gorm:"not null;default:false"`
	IsOccupied    bool      `json:"is_occupied" gorm:"not null;default:false"`
	IsCheckedIn   bool      `json:"is_checked_in" gorm:"not null;default:false"`
	UserID        *uint     `json:"user_id" gorm:"index"`
	ReservedAt    time.Time `json:"reserved_at" gorm:"not null"`
	ReservedDueTo time.Time `json:"reserved_due_to" gorm:"not null;index"`
	HoursReserved int       `json:"hours_reserved" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// NewEmptySpot returns an unowned spot whose window is empty at now.
func NewEmptySpot(now time.Time) *Spot {
	return &Spot{
		ReservedAt:    now,
		ReservedDueTo: now,
	}
}

// NewOwnedSpot returns an unreserved spot attached to user with the default
// administrative window starting at now.
func NewOwnedSpot(user *User, now time.Time) *Spot {
	return &Spot{
		UserID:        &user.ID,
		User:          user,
		ReservedAt:    now,
		ReservedDueTo: now.Add(DefaultOwnerWindow * time.Hour),
		HoursReserved: DefaultOwnerWindow,
	}
}

// IsBusy reports whether a new reservation must be refused at now: the current
// window has not elapsed yet or a vehicle is physically parked.
func (s *Spot) IsBusy(now time.Time) bool {
	return s.ReservedDueTo.After(now) || s.IsOccupied
}

// IsExpired reports whether the reservation window ended strictly before now.
func (s *Spot) IsExpired(now time.Time) bool {
	return s.ReservedDueTo.Before(now)
}

// ValidHours reports whether hours is an acceptable reservation length.
func ValidHours(hours int) bool {
	return hours > 0 && hours <= MaxHoursReserved
}

// Reserve assigns the spot to userID for hours starting at now.
func (s *Spot) Reserve(userID uint, hours int, now time.Time) {
	s.UserID = &userID
	s.IsReserved = true
	s.HoursReserved = hours
	s.ReservedAt = now
	s.ReservedDueTo = now.Add(time.Duration(hours) * time.Hour)
}

// Release returns the spot to the unowned state. Occupancy is left as-is;
// the check-in flag is cleared only when resetCheckIn is set.
func (s *Spot) Release(now time.Time, resetCheckIn bool) {
	s.UserID = nil
	s.User = nil
	s.IsReserved = false
	s.HoursReserved = 0
	s.ReservedAt = now
	s.ReservedDueTo = now
	if resetCheckIn {
		s.IsCheckedIn = false
	}
}

// OwnedBy reports whether userID is the current owner.
func (s *Spot) OwnedBy(userID uint) bool {
	return s.UserID != nil && *s.UserID == userID
}
