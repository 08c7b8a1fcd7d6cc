// Package tmdb implements a typed client for the TMDB v3 API, the remote
// movie catalog. All calls are idempotent GETs with a fixed timeout and a
// uniform error translation: a non-2xx response becomes an *APIError
// carrying the upstream status, a transport failure is wrapped and
// reported as such.
package tmdb

// MovieResult is one entry of a paginated movie listing or search response.
type MovieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int64 `json:"genre_ids"`
}

// MovieListResponse is the envelope of every paginated movie endpoint
// (popular, now playing, top rated, upcoming, search, discover).
type MovieListResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// MovieDetailsResponse is the full detail record of a single movie.
type MovieDetailsResponse struct {
	MovieResult
	Runtime             int     `json:"runtime"`
	Budget              int64   `json:"budget"`
	Revenue             int64   `json:"revenue"`
	Status              string  `json:"status"`
	Tagline             string  `json:"tagline"`
	Homepage            string  `json:"homepage"`
	IMDBID              string  `json:"imdb_id"`
	Genres              []Genre `json:"genres"`
	ProductionCompanies []struct {
		Name string `json:"name"`
	} `json:"production_companies"`
	ProductionCountries []struct {
		Name string `json:"name"`
	} `json:"production_countries"`
	SpokenLanguages []struct {
		EnglishName string `json:"english_name"`
	} `json:"spoken_languages"`
}

// Genre is one entry of the genre list endpoint.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse wraps the genre list endpoint.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// CreditsResponse carries the cast of a movie.
type CreditsResponse struct {
	ID   int64 `json:"id"`
	Cast []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Character   string `json:"character"`
		ProfilePath string `json:"profile_path"`
		Order       int    `json:"order"`
	} `json:"cast"`
}

// ExternalIDsResponse maps a movie or person to identifiers in other
// catalogs (IMDB being the one the client uses).
type ExternalIDsResponse struct {
	ID     int64  `json:"id"`
	IMDBID string `json:"imdb_id"`
}

// VideosResponse carries the trailers and clips of a movie.
type VideosResponse struct {
	ID      int64 `json:"id"`
	Results []struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Site     string `json:"site"`
		Type     string `json:"type"`
		Official bool   `json:"official"`
	} `json:"results"`
}

// WatchProvidersResponse carries per-region streaming availability.
// Flatrate entries are subscription services; Rent and Buy are
// transactional.
type WatchProvidersResponse struct {
	ID      int64                     `json:"id"`
	Results map[string]RegionProvider `json:"results"`
}

// RegionProvider is the availability of a movie in one country.
type RegionProvider struct {
	Link     string          `json:"link"`
	Flatrate []ProviderEntry `json:"flatrate"`
	Rent     []ProviderEntry `json:"rent"`
	Buy      []ProviderEntry `json:"buy"`
}

// ProviderEntry is one streaming service in a region listing.
type ProviderEntry struct {
	ProviderID   int64  `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// PersonResponse is the detail record of an actor or crew member.
type PersonResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}

// PersonMovieCreditsResponse lists the movies a person is credited on.
type PersonMovieCreditsResponse struct {
	ID   int64 `json:"id"`
	Cast []struct {
		MovieResult
		Character string `json:"character"`
	} `json:"cast"`
}
