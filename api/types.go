// Package api defines the JSON wire types served by the HTTP layer. Movie
// payloads keep the upstream catalog's field casing (Title, Year, imdbID) so
// existing consumers of that format can switch over without changes.
package api

import "time"

// MovieSummary is one search or trending result.
type MovieSummary struct {
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	ImdbID    string `json:"imdbID"`
	Type      string `json:"Type"`
	PosterURL string `json:"Poster"`
}

// MovieDetails is the full record for one title.
type MovieDetails struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	PosterURL  string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
}

type SearchMoviesResponse struct {
	Movies []MovieSummary `json:"movies"`
}

type TrendingMoviesResponse struct {
	Movies []MovieSummary `json:"movies"`
}

// StreamingOffer is one service carrying the title in the selected region.
type StreamingOffer struct {
	ServiceID      string `json:"serviceId"`
	ServiceName    string `json:"serviceName"`
	ServiceLogoURL string `json:"serviceLogoUrl"`
	Link           string `json:"link"`
}

type StreamingResponse struct {
	Region string           `json:"region"`
	Offers []StreamingOffer `json:"offers"`
}

// SearchMoviesParams carries the validated query parameters of a search
// request.
type SearchMoviesParams struct {
	Query string `validate:"required,min=1,max=100"`
	Year  string `validate:"omitempty,len=4,numeric"`
}

// MoviePathParams carries the validated path parameters of the details and
// streaming endpoints.
type MoviePathParams struct {
	ImdbID string `validate:"required,imdb_id"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
