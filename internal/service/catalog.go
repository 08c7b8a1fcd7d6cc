// Package service contains the read and write coordination between the
// remote catalog and the local status store: the catalog service joins
// every read with status rows, the status service is the only write path
// into the store.
package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/movify/movify-server/internal/model"
	"github.com/movify/movify-server/internal/repository"
	"github.com/movify/movify-server/internal/tmdb"
)

// CatalogService fetches catalog data, normalizes it to display models and
// enriches every record with the local status row for its movie id. The
// join is computed freshly on each call; nothing is cached here.
type CatalogService struct {
	catalog  *tmdb.Client
	statuses *repository.StatusRepo
	region   string           // region used to flatten watch providers
	now      func() time.Time // injectable clock for display-status resolution
}

// NewCatalogService wires the remote client and the status repository.
// Region selects which country's watch providers are surfaced.
func NewCatalogService(catalog *tmdb.Client, statuses *repository.StatusRepo, region string) *CatalogService {
	return &CatalogService{catalog: catalog, statuses: statuses, region: region, now: time.Now}
}

// movieFromResult normalizes one catalog listing entry. Status fields keep
// their defaults until enrich projects the stored row on top.
func movieFromResult(r tmdb.MovieResult) model.Movie {
	return model.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterURL:   tmdb.PosterURL(r.PosterPath),
		BackdropURL: tmdb.BackdropURL(r.BackdropPath),
		ReleaseDate: r.ReleaseDate,
		Rating:      roundRating(r.VoteAverage),
		VoteCount:   r.VoteCount,
		Status:      model.StatusNone,
	}
}

// roundRating rounds the upstream vote average to one decimal, matching
// what the client renders.
func roundRating(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// enrich projects the movie's status row onto its display fields, leaving
// remote-sourced fields untouched. A movie without a row keeps the default
// {none, not favorite, no date}.
func (s *CatalogService) enrich(ctx context.Context, m *model.Movie) error {
	rec, err := s.statuses.Get(ctx, m.ID)
	if err != nil {
		return err
	}
	if rec != nil {
		m.Status = rec.Status
		m.IsFavorite = rec.IsFavorite
		m.ScheduledDate = rec.ScheduledDate
	}
	m.DisplayStatus = model.ResolveDisplayStatus(m.Status, m.ScheduledDate, s.now())
	return nil
}

// listPage transforms and enriches one page of catalog results.
func (s *CatalogService) listPage(ctx context.Context, resp *tmdb.MovieListResponse) (*model.MoviePage, error) {
	movies := make([]model.Movie, 0, len(resp.Results))
	for _, r := range resp.Results {
		m := movieFromResult(r)
		if err := s.enrich(ctx, &m); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return &model.MoviePage{Movies: movies, Page: resp.Page, TotalPages: resp.TotalPages}, nil
}

// Popular returns one enriched page of the popular listing.
func (s *CatalogService) Popular(ctx context.Context, page int) (*model.MoviePage, error) {
	resp, err := s.catalog.Popular(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// NowPlaying returns one enriched page of the now-playing listing.
func (s *CatalogService) NowPlaying(ctx context.Context, page int) (*model.MoviePage, error) {
	resp, err := s.catalog.NowPlaying(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// TopRated returns one enriched page of the top-rated listing.
func (s *CatalogService) TopRated(ctx context.Context, page int) (*model.MoviePage, error) {
	resp, err := s.catalog.TopRated(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// Upcoming returns one enriched page of the upcoming listing.
func (s *CatalogService) Upcoming(ctx context.Context, page int) (*model.MoviePage, error) {
	resp, err := s.catalog.Upcoming(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// Search returns one enriched page of search results. A blank query yields
// an empty page without a remote call.
func (s *CatalogService) Search(ctx context.Context, query string, page int) (*model.MoviePage, error) {
	if query == "" {
		return &model.MoviePage{Movies: []model.Movie{}, Page: 1}, nil
	}
	resp, err := s.catalog.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// Discover returns one enriched page of movies matching the genre filter.
func (s *CatalogService) Discover(ctx context.Context, genreIDs []int64, page int) (*model.MoviePage, error) {
	resp, err := s.catalog.Discover(ctx, genreIDs, page)
	if err != nil {
		return nil, err
	}
	return s.listPage(ctx, resp)
}

// detailsFromResponse normalizes the full detail payload.
func detailsFromResponse(d *tmdb.MovieDetailsResponse) model.MovieDetails {
	out := model.MovieDetails{
		Movie:         movieFromResult(d.MovieResult),
		Runtime:       d.Runtime,
		Budget:        d.Budget,
		Revenue:       d.Revenue,
		ReleaseStatus: d.Status,
		Tagline:       d.Tagline,
		Homepage:      d.Homepage,
		IMDBID:        d.IMDBID,
	}
	for _, g := range d.Genres {
		out.Genres = append(out.Genres, g.Name)
	}
	for _, c := range d.ProductionCompanies {
		out.ProductionCompanies = append(out.ProductionCompanies, c.Name)
	}
	for _, c := range d.ProductionCountries {
		out.ProductionCountries = append(out.ProductionCountries, c.Name)
	}
	for _, l := range d.SpokenLanguages {
		out.SpokenLanguages = append(out.SpokenLanguages, l.EnglishName)
	}
	return out
}

// Details returns the enriched detail record of one movie.
func (s *CatalogService) Details(ctx context.Context, movieID int64) (*model.MovieDetails, error) {
	resp, err := s.catalog.Details(ctx, movieID)
	if err != nil {
		return nil, err
	}
	out := detailsFromResponse(resp)
	if err := s.enrich(ctx, &out.Movie); err != nil {
		return nil, err
	}
	return &out, nil
}

// Extras returns the detail record together with cast, trailers and watch
// providers, fetched concurrently. The detail fetch is required; a failure
// of any side fetch is logged and its section left empty, so one upstream
// hiccup does not take the whole screen down.
func (s *CatalogService) Extras(ctx context.Context, movieID int64) (*model.MovieExtras, error) {
	var (
		wg        sync.WaitGroup
		details   *tmdb.MovieDetailsResponse
		credits   *tmdb.CreditsResponse
		external  *tmdb.ExternalIDsResponse
		providers *tmdb.WatchProvidersResponse
		videos    *tmdb.VideosResponse

		detailsErr   error
		creditsErr   error
		externalErr  error
		providersErr error
		videosErr    error
	)

	wg.Add(5)
	go func() { defer wg.Done(); details, detailsErr = s.catalog.Details(ctx, movieID) }()
	go func() { defer wg.Done(); credits, creditsErr = s.catalog.Credits(ctx, movieID) }()
	go func() { defer wg.Done(); external, externalErr = s.catalog.ExternalIDs(ctx, movieID) }()
	go func() { defer wg.Done(); providers, providersErr = s.catalog.WatchProviders(ctx, movieID) }()
	go func() { defer wg.Done(); videos, videosErr = s.catalog.Videos(ctx, movieID) }()
	wg.Wait()

	if detailsErr != nil {
		return nil, detailsErr
	}
	out := &model.MovieExtras{MovieDetails: detailsFromResponse(details)}
	if err := s.enrich(ctx, &out.Movie); err != nil {
		return nil, err
	}

	if creditsErr != nil {
		log.Printf("catalog: credits for movie %d failed: %v", movieID, creditsErr)
	} else {
		out.Cast = castFromResponse(credits)
	}
	if externalErr != nil {
		log.Printf("catalog: external ids for movie %d failed: %v", movieID, externalErr)
	} else if external.IMDBID != "" {
		out.IMDBID = external.IMDBID
	}
	if providersErr != nil {
		log.Printf("catalog: watch providers for movie %d failed: %v", movieID, providersErr)
	} else {
		out.Providers = s.providersFromResponse(providers)
	}
	if videosErr != nil {
		log.Printf("catalog: videos for movie %d failed: %v", movieID, videosErr)
	} else {
		out.Videos = videosFromResponse(videos)
	}
	return out, nil
}

func castFromResponse(resp *tmdb.CreditsResponse) []model.CastMember {
	cast := make([]model.CastMember, 0, len(resp.Cast))
	for _, c := range resp.Cast {
		cast = append(cast, model.CastMember{
			ID:         c.ID,
			Name:       c.Name,
			Character:  c.Character,
			ProfileURL: tmdb.ProfileURL(c.ProfilePath),
			Order:      c.Order,
		})
	}
	sort.SliceStable(cast, func(i, j int) bool { return cast[i].Order < cast[j].Order })
	return cast
}

func videosFromResponse(resp *tmdb.VideosResponse) []model.Video {
	out := make([]model.Video, 0, len(resp.Results))
	for _, v := range resp.Results {
		out = append(out, model.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	return out
}

// providersFromResponse flattens the configured region's subscription
// offerings; rent/buy entries are appended after them.
func (s *CatalogService) providersFromResponse(resp *tmdb.WatchProvidersResponse) []model.WatchProvider {
	region, ok := resp.Results[s.region]
	if !ok {
		return nil
	}
	seen := map[int64]bool{}
	var out []model.WatchProvider
	for _, group := range [][]tmdb.ProviderEntry{region.Flatrate, region.Rent, region.Buy} {
		for _, p := range group {
			if seen[p.ProviderID] {
				continue
			}
			seen[p.ProviderID] = true
			out = append(out, model.WatchProvider{
				Name:    p.ProviderName,
				LogoURL: tmdb.ImageURL(p.LogoPath, tmdb.PosterW92),
			})
		}
	}
	return out
}

// Videos returns the trailers of a movie.
func (s *CatalogService) Videos(ctx context.Context, movieID int64) ([]model.Video, error) {
	resp, err := s.catalog.Videos(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return videosFromResponse(resp), nil
}

// Genres returns the catalog genre list.
func (s *CatalogService) Genres(ctx context.Context) ([]model.Genre, error) {
	resp, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Genre, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		out = append(out, model.Genre{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// Person returns the detail record of an actor or crew member.
func (s *CatalogService) Person(ctx context.Context, personID int64) (*model.Person, error) {
	resp, err := s.catalog.Person(ctx, personID)
	if err != nil {
		return nil, err
	}
	out := &model.Person{
		ID:         resp.ID,
		Name:       resp.Name,
		Biography:  resp.Biography,
		Birthday:   resp.Birthday,
		ProfileURL: tmdb.ProfileURL(resp.ProfilePath),
		KnownFor:   resp.KnownForDepartment,
	}
	if external, err := s.catalog.PersonExternalIDs(ctx, personID); err != nil {
		log.Printf("catalog: external ids for person %d failed: %v", personID, err)
	} else {
		out.IMDBID = external.IMDBID
	}
	return out, nil
}

// PersonCredits returns the enriched filmography of a person.
func (s *CatalogService) PersonCredits(ctx context.Context, personID int64) ([]model.Movie, error) {
	resp, err := s.catalog.PersonMovieCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	movies := make([]model.Movie, 0, len(resp.Cast))
	for _, c := range resp.Cast {
		m := movieFromResult(c.MovieResult)
		if err := s.enrich(ctx, &m); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// Library returns every movie the user has touched, most recent first, each
// status row joined with its remote detail record. A movie whose remote
// lookup fails is skipped and logged rather than failing the whole listing.
func (s *CatalogService) Library(ctx context.Context) ([]model.Movie, error) {
	recs, err := s.statuses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.moviesForRecords(ctx, recs), nil
}

// Favorites returns the favorited movies, most recently touched first.
func (s *CatalogService) Favorites(ctx context.Context) ([]model.Movie, error) {
	recs, err := s.statuses.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}
	return s.moviesForRecords(ctx, recs), nil
}

// ByStatus returns the movies stored with the given status, most recently
// touched first.
func (s *CatalogService) ByStatus(ctx context.Context, status model.Status) ([]model.Movie, error) {
	recs, err := s.statuses.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.moviesForRecords(ctx, recs), nil
}

// moviesForRecords resolves remote details for each status row. Partial
// success is preferred over an all-or-nothing listing.
func (s *CatalogService) moviesForRecords(ctx context.Context, recs []model.StatusRecord) []model.Movie {
	movies := make([]model.Movie, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.catalog.Details(ctx, rec.MovieID)
		if err != nil {
			log.Printf("catalog: details for movie %d failed, skipping: %v", rec.MovieID, err)
			continue
		}
		m := detailsFromResponse(resp).Movie
		m.Status = rec.Status
		m.IsFavorite = rec.IsFavorite
		m.ScheduledDate = rec.ScheduledDate
		m.DisplayStatus = model.ResolveDisplayStatus(m.Status, m.ScheduledDate, s.now())
		movies = append(movies, m)
	}
	return movies
}
