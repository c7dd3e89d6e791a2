package models

// User represents a registered veterinarian as persisted in the users collection.
// Password holds the bcrypt hash of the credential.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CRMV      string `json:"crmv,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// UserInfo describes a user in API responses.
type UserInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CRMV      string `json:"crmv"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

// Info strips the credential from the user record.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CRMV:      u.CRMV,
		Phone:     u.Phone,
		BirthDate: u.BirthDate,
	}
}
