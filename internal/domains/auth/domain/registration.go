package domain

// Address is the store owner's address collected at registration.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
}

// Registration carries the sign-up form as entered. The backend validates every field.
type Registration struct {
	Name     string
	Email    string
	Password string
	CPF      string
	Address  Address
}
