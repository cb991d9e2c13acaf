package server

import (
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/persistance"
)

type SessionView struct {
	ID           string               `json:"id"`
	State        persistance.Document `json:"state"`
	Chips        []filter.Chip        `json:"chips"`
	QuickFilters []string             `json:"quickFilters"`
	Available    []string             `json:"availableQuickFilters"`
	Query        string               `json:"query"`
}

type CreateSessionRequest struct {
	Status string `json:"status"`
}

type AdvancedRequest struct {
	Actions []persistance.ActionRecord `json:"actions"`
}

type HandoffResponse struct {
	Token string `json:"token"`
}

type QueryResponse struct {
	Query string               `json:"query"`
	State persistance.Document `json:"state"`
	Chips []filter.Chip        `json:"chips"`
}
