package tmdb

// Image URL construction for the TMDB CDN. Paths returned by the API are
// relative ("/abc.jpg"); the client composes them with a size bucket.

const imageBaseURL = "https://image.tmdb.org/t/p"

// Poster size buckets supported by the CDN.
const (
	PosterW92      = "w92"
	PosterW154     = "w154"
	PosterW185     = "w185"
	PosterW342     = "w342"
	PosterW500     = "w500"
	PosterW780     = "w780"
	PosterOriginal = "original"
)

// Backdrop size buckets supported by the CDN.
const (
	BackdropW300     = "w300"
	BackdropW780     = "w780"
	BackdropW1280    = "w1280"
	BackdropOriginal = "original"
)

// ImageURL builds the CDN URL for a relative image path in the given size
// bucket. An empty path yields an empty URL; clients render their own
// placeholder.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "/" + size + path
}

// PosterURL builds the default-size poster URL.
func PosterURL(path string) string { return ImageURL(path, PosterW500) }

// BackdropURL builds the default-size backdrop URL.
func BackdropURL(path string) string { return ImageURL(path, BackdropW1280) }

// ProfileURL builds the cast profile image URL.
func ProfileURL(path string) string { return ImageURL(path, PosterW185) }
