package app

import (
	"errors"
	"net/http"

	"github.com/DavideRizzari/movieverse/api"
	"github.com/DavideRizzari/movieverse/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *application) SearchMovies(w http.ResponseWriter, r *http.Request) {
	params := api.SearchMoviesParams{
		Query: r.URL.Query().Get("q"),
		Year:  r.URL.Query().Get("y"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, err := app.catalog.Search(r.Context(), params.Query, params.Year)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SearchMoviesResponse{
		Movies: toApiMovieSummaries(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTrendingMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.catalog.Trending(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TrendingMoviesResponse{
		Movies: toApiMovieSummaries(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieDetails(w http.ResponseWriter, r *http.Request) {
	params := api.MoviePathParams{
		ImdbID: chi.URLParam(r, "imdbID"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	details, err := app.catalog.Details(r.Context(), params.ImdbID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovieDetails(details), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieStreaming(w http.ResponseWriter, r *http.Request) {
	params := api.MoviePathParams{
		ImdbID: chi.URLParam(r, "imdbID"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	offers, err := app.catalog.Availability(r.Context(), params.ImdbID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiStreamingResponse(offers), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiMovieSummaries(movies []domain.MovieSummary) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Title:     movie.Title,
			Year:      movie.Year,
			ImdbID:    movie.ImdbID,
			Type:      movie.Kind,
			PosterURL: movie.PosterURL,
		}
	}

	return summaries
}

func toApiMovieDetails(details *domain.MovieDetails) api.MovieDetails {
	if details == nil {
		return api.MovieDetails{}
	}

	return api.MovieDetails{
		Title:      details.Title,
		Year:       details.Year,
		Rated:      details.Rated,
		Released:   details.Released,
		Runtime:    details.Runtime,
		Genre:      details.Genre,
		Director:   details.Director,
		Actors:     details.Actors,
		Plot:       details.Plot,
		PosterURL:  details.PosterURL,
		ImdbRating: details.ImdbRating,
		ImdbID:     details.ImdbID,
		Type:       details.Kind,
	}
}

func toApiStreamingResponse(regionOffers *domain.RegionOffers) api.StreamingResponse {
	if regionOffers == nil {
		return api.StreamingResponse{Offers: []api.StreamingOffer{}}
	}

	offers := make([]api.StreamingOffer, len(regionOffers.Offers))
	for i, offer := range regionOffers.Offers {
		offers[i] = api.StreamingOffer{
			ServiceID:      offer.ServiceID,
			ServiceName:    offer.ServiceName,
			ServiceLogoURL: offer.ServiceLogoURL,
			Link:           offer.DeepLink,
		}
	}

	return api.StreamingResponse{
		Region: regionOffers.Region,
		Offers: offers,
	}
}
