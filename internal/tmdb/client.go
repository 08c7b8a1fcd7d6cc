package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// requestTimeout bounds every catalog call; the upstream API answers well
// under a second when healthy.
const requestTimeout = 10 * time.Second

// APIError is the typed error for a non-2xx catalog response. StatusCode is
// the upstream HTTP status; Message the status_message field of the error
// body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the TMDB v3 API. The api_key and language parameters are
// attached to every request; individual calls add their own parameters on
// top. The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
}

// NewClient returns a catalog client bound to the given base URL, API key
// and default response language.
func NewClient(baseURL, apiKey, language string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// get performs one catalog request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if params.Get("language") == "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.StatusMessage}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

// Popular returns one page of the popular movies listing.
func (c *Client) Popular(ctx context.Context, page int) (*MovieListResponse, error) {
	var out MovieListResponse
	if err := c.get(ctx, "/movie/popular", pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NowPlaying returns one page of the now-playing listing.
func (c *Client) NowPlaying(ctx context.Context, page int) (*MovieListResponse, error) {
	var out MovieListResponse
	if err := c.get(ctx, "/movie/now_playing", pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopRated returns one page of the top-rated listing.
func (c *Client) TopRated(ctx context.Context, page int) (*MovieListResponse, error) {
	var out MovieListResponse
	if err := c.get(ctx, "/movie/top_rated", pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upcoming returns one page of the upcoming listing.
func (c *Client) Upcoming(ctx context.Context, page int) (*MovieListResponse, error) {
	var out MovieListResponse
	if err := c.get(ctx, "/movie/upcoming", pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns one page of movies matching the free-text query.
func (c *Client) Search(ctx context.Context, query string, page int) (*MovieListResponse, error) {
	params := pageParams(page)
	params.Set("query", query)
	var out MovieListResponse
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Discover returns one page of movies matching all of the given genre ids.
func (c *Client) Discover(ctx context.Context, genreIDs []int64, page int) (*MovieListResponse, error) {
	params := pageParams(page)
	ids := make([]string, len(genreIDs))
	for i, id := range genreIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	params.Set("with_genres", strings.Join(ids, ","))
	var out MovieListResponse
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Details returns the full detail record of a movie.
func (c *Client) Details(ctx context.Context, movieID int64) (*MovieDetailsResponse, error) {
	var out MovieDetailsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Credits returns the cast of a movie.
func (c *Client) Credits(ctx context.Context, movieID int64) (*CreditsResponse, error) {
	var out CreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExternalIDs returns the external catalog identifiers of a movie.
func (c *Client) ExternalIDs(ctx context.Context, movieID int64) (*ExternalIDsResponse, error) {
	var out ExternalIDsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WatchProviders returns per-region streaming availability for a movie.
func (c *Client) WatchProviders(ctx context.Context, movieID int64) (*WatchProvidersResponse, error) {
	var out WatchProvidersResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Videos returns the trailers of a movie in the configured language. Many
// titles only carry trailers in en-US, so an empty localized result falls
// back to an en-US lookup; a failing fallback returns the original (empty)
// response rather than an error.
func (c *Client) Videos(ctx context.Context, movieID int64) (*VideosResponse, error) {
	var out VideosResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &out); err != nil {
		return nil, err
	}
	if len(out.Results) > 0 || c.language == "en-US" {
		return &out, nil
	}
	var fallback VideosResponse
	params := url.Values{"language": []string{"en-US"}}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), params, &fallback); err != nil {
		return &out, nil
	}
	return &fallback, nil
}

// Genres returns the movie genre list.
func (c *Client) Genres(ctx context.Context) (*GenreListResponse, error) {
	var out GenreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Person returns the detail record of an actor or crew member.
func (c *Client) Person(ctx context.Context, personID int64) (*PersonResponse, error) {
	var out PersonResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d", personID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonMovieCredits returns the movies a person is credited on.
func (c *Client) PersonMovieCredits(ctx context.Context, personID int64) (*PersonMovieCreditsResponse, error) {
	var out PersonMovieCreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", personID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonExternalIDs returns the external catalog identifiers of a person.
func (c *Client) PersonExternalIDs(ctx context.Context, personID int64) (*ExternalIDsResponse, error) {
	var out ExternalIDsResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d/external_ids", personID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
