package artifact

import (
	"context"
	"time"
)

// Record is the persisted form of a travel guide. Field names match the
// JSON history format written by FileStore.
type Record struct {
	Timestamp          time.Time `json:"timestamp"`
	UserQuery          string    `json:"user_query"`
	Location           string    `json:"location"`
	Date               string    `json:"date"`
	WeatherResponse    string    `json:"weather_response"`
	HotelResponse      string    `json:"hotel_response"`
	RestaurantResponse string    `json:"restaurant_response"`
	AttractionResponse string    `json:"attraction_response"`
	FinalResponse      string    `json:"final_response"`
}

// Store persists travel guide records.
type Store interface {
	// Save stores the record and returns the id it can be retrieved by.
	Save(ctx context.Context, rec *Record) (string, error)
	// Get returns the record stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns all ids, oldest first.
	List(ctx context.Context) ([]string, error)
}
