package domain

// Client is a person or business the company lends to. One client can have
// many loan applications over time.
type Client struct {
	ClientID     string `json:"clientID"` // Primary Key (e.g., UUID)
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	NationalID   string `json:"nationalID"`
	Address      string `json:"address"`
	Occupation   string `json:"occupation"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
