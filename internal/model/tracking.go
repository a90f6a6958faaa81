package model

import (
	"strings"
	"time"
)

type OrderTracking struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasLocation reports whether both coordinates are known.
func (t *OrderTracking) HasLocation() bool {
	return t != nil && t.Latitude != nil && t.Longitude != nil
}

type TrackingUpdateRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

func (r *TrackingUpdateRequest) Normalize() {
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r TrackingUpdateRequest) Validate() error {
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return invalid("latitude", "latitude e longitude devem ser informadas juntas")
	}
	if r.Latitude != nil {
		if err := validateCoordinates(*r.Latitude, *r.Longitude); err != nil {
			return err
		}
	}
	if r.Latitude == nil && r.Address == "" && r.City == "" && r.State == "" && r.Notes == "" {
		return invalid("latitude", "atualização de rastreamento vazia")
	}
	return nil
}

type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r LocationUpdateRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

// TrackingUpdate converts a location-only update.
func (r LocationUpdateRequest) TrackingUpdate() TrackingUpdateRequest {
	lat, lng := r.Latitude, r.Longitude
	return TrackingUpdateRequest{Latitude: &lat, Longitude: &lng}
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return invalid("latitude", "latitude fora do intervalo")
	}
	if lng < -180 || lng > 180 {
		return invalid("longitude", "longitude fora do intervalo")
	}
	return nil
}
