package entities

import "time"

// User is a loyalty program member as the game engine sees them.
// Authentication and the rest of the customer profile live elsewhere; the
// engine only reads the id and updates the points ledger fields.
type User struct {
	ID               int64
	Username         string
	CustomerPoints   int // cumulative loyalty points
	HighestGameScore int // best single-session score
	IsActive         bool
	CreatedAt        time.Time
}

func NewUser(id int64, username string) *User {
	return &User{
		ID:        id,
		Username:  username,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// AddCustomerPoints credits loyalty points to the user.
func (u *User) AddCustomerPoints(points int) {
	u.CustomerPoints += points
}

// UpdateHighestScore raises the best score if the new one beats it.
func (u *User) UpdateHighestScore(score int) {
	if score > u.HighestGameScore {
		u.HighestGameScore = score
	}
}
