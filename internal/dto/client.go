package dto

import (
	"time"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// CreateClientRequest registers a new borrowing client.
type CreateClientRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"required"`
	NationalID string `json:"nationalID" binding:"required"`
	Address    string `json:"address"`
	Occupation string `json:"occupation"`
}

// ClientResponse is the public projection of a client.
type ClientResponse struct {
	ClientID   string    `json:"clientID"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"nationalID"`
	Address    string    `json:"address"`
	Occupation string    `json:"occupation"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListClientsParams carries token pagination parameters for the client list.
type ListClientsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListClientsResponse is a page of clients plus the next page token.
type ListClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToClientResponse converts a domain client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   c.ClientID,
		FullName:   c.FullName,
		Email:      c.Email,
		Phone:      c.Phone,
		NationalID: c.NationalID,
		Address:    c.Address,
		Occupation: c.Occupation,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

// ToClientResponses converts a slice of domain clients.
func ToClientResponses(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}
