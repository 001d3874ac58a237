package models

const (
	TMDBImageBase        = "https://image.tmdb.org/t/p/"
	TMDBImageBaseW500    = TMDBImageBase + "w500"
	TMDBImageBaseW780    = TMDBImageBase + "w780"
	TMDBImageBaseW185    = TMDBImageBase + "w185"
	TMDBImageBaseW92     = TMDBImageBase + "w92"
	YouTubeWatchBase     = "https://www.youtube.com/watch?v="
	YouTubeThumbnailBase = "https://img.youtube.com/vi/"
	VimeoWatchBase       = "https://vimeo.com/"
)

// ImageURL joins a TMDb image base with a file path; empty paths stay empty.
func ImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}
