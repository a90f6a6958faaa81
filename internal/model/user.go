package model

import "time"

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleDriver     UserRole = "driver"
	RoleShopkeeper UserRole = "shopkeeper"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleDriver, RoleShopkeeper, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is what the gateway knows about the caller from the bearer token.
type Identity struct {
	UserID string   `json:"id"`
	Email  string   `json:"email,omitempty"`
	Name   string   `json:"name,omitempty"`
	Role   UserRole `json:"role,omitempty"`
}

// Address is the postal-code lookup result.
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
}
