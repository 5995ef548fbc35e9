package domain

import "time"

// User representa una cuenta registrada.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	TermsAccepted bool      `json:"termsAccepted"`
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	PhoneNumber   *string   `json:"phoneNumber"`
	About         *string   `json:"about"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile es la proyeccion publica del usuario; nunca incluye el password.
type Profile struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	About       *string `json:"about"`
}

// ProfileFields son los campos de perfil que el propio usuario puede modificar.
type ProfileFields struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	About       string
}

// Profile devuelve la proyeccion publica del usuario.
func (u User) Profile() Profile {
	return Profile{
		Name:        u.Name,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		About:       u.About,
	}
}
