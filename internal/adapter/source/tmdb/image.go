package tmdb

// ImageSize is one of the supported image size tags
type ImageSize string

const (
	SizeW500     ImageSize = "w500"
	SizeOriginal ImageSize = "original"
)

const (
	ImageBaseURL    = "https://image.tmdb.org/t/p/"
	PlaceholderURL  = "https://via.placeholder.com/500x750?text=No+Image"
	YouTubeEmbedURL = "https://www.youtube.com/embed/"
)

// ImageURL resolves a relative image path. An empty path resolves to the placeholder;
// any size other than original is treated as w500.
func ImageURL(path string, size ImageSize) string {
	if path == "" {
		return PlaceholderURL
	}
	if size != SizeOriginal {
		size = SizeW500
	}
	return ImageBaseURL + string(size) + path
}

// TrailerURL returns the embeddable player URL for a video key, or "" for an empty key
func TrailerURL(key string) string {
	if key == "" {
		return ""
	}
	return YouTubeEmbedURL + key
}
