package model

import "time"

// Movie is the display representation of a catalog movie as the client
// consumes it: remote metadata already normalized (image URLs built, rating
// rounded) and joined with the local status record.  Status, IsFavorite and
// ScheduledDate come from the status store; everything else from the catalog.
type Movie struct {
    ID            int64      `json:"id"`
    Title         string     `json:"title"`
    Overview      string     `json:"overview"`
    PosterURL     string     `json:"poster_url,omitempty"`
    BackdropURL   string     `json:"backdrop_url,omitempty"`
    ReleaseDate   string     `json:"release_date"`
    Rating        float64    `json:"rating"`
    VoteCount     int        `json:"vote_count"`
    Genres        []string   `json:"genres,omitempty"`
    Status        Status     `json:"status"`
    DisplayStatus Status     `json:"display_status"`
    IsFavorite    bool       `json:"is_favorite"`
    ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// MovieDetails extends Movie with the fields only present on the detail
// endpoint of the catalog.
type MovieDetails struct {
    Movie
    Runtime             int      `json:"runtime"`
    Budget              int64    `json:"budget"`
    Revenue             int64    `json:"revenue"`
    ReleaseStatus       string   `json:"release_status"`
    Tagline             string   `json:"tagline"`
    Homepage            string   `json:"homepage"`
    IMDBID              string   `json:"imdb_id"`
    ProductionCompanies []string `json:"production_companies,omitempty"`
    ProductionCountries []string `json:"production_countries,omitempty"`
    SpokenLanguages     []string `json:"spoken_languages,omitempty"`
}

// MoviePage is one page of a paginated catalog listing.
type MoviePage struct {
    Movies     []Movie `json:"items"`
    Page       int     `json:"page"`
    TotalPages int     `json:"total_pages"`
}

// CastMember is a single credited actor on a movie.
type CastMember struct {
    ID         int64  `json:"id"`
    Name       string `json:"name"`
    Character  string `json:"character"`
    ProfileURL string `json:"profile_url,omitempty"`
    Order      int    `json:"order"`
}

// Video is a trailer or clip attached to a movie.
type Video struct {
    Key      string `json:"key"`
    Name     string `json:"name"`
    Site     string `json:"site"`
    Type     string `json:"type"`
    Official bool   `json:"official"`
}

// WatchProvider is a streaming service offering a movie in some region.
type WatchProvider struct {
    Name    string `json:"name"`
    LogoURL string `json:"logo_url,omitempty"`
}

// MovieExtras bundles the detail record with cast, external ids and
// streaming availability; the client fetches it in one round trip.
type MovieExtras struct {
    MovieDetails
    Cast      []CastMember    `json:"cast,omitempty"`
    Videos    []Video         `json:"videos,omitempty"`
    Providers []WatchProvider `json:"providers,omitempty"`
}

// Genre is one entry of the catalog's genre list.
type Genre struct {
    ID   int64  `json:"id"`
    Name string `json:"name"`
}

// Person is the display representation of an actor or crew member.
type Person struct {
    ID         int64  `json:"id"`
    Name       string `json:"name"`
    Biography  string `json:"biography,omitempty"`
    Birthday   string `json:"birthday,omitempty"`
    ProfileURL string `json:"profile_url,omitempty"`
    KnownFor   string `json:"known_for_department,omitempty"`
    IMDBID     string `json:"imdb_id,omitempty"`
}
