package domain

import "time"

// Credit balance sentinels. CreditsUnlimited marks an active subscription;
// it always passes the balance check and is never decremented.
const (
	CreditsUnlimited int64 = 999999
	FreeTierCredits  int64 = 3
)

// User is the account row owned by the hosted identity provider. ID is the
// provider's subject claim, not a locally generated identifier.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null" json:"email"`
	Credits   int64     `gorm:"not null;default:3" json:"credits"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	IsBanned  bool      `gorm:"not null;default:false" json:"is_banned"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Unlimited reports whether the balance denotes an active subscription.
func (u User) Unlimited() bool {
	return u.Credits >= CreditsUnlimited
}
