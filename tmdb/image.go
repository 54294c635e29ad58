package tmdb

// ImageBaseURL is the host prefix for image path fragments
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// Image sizes used by the views
const (
	PosterSize   = "w500"
	BackdropSize = "w1280"
)

// ImageURL joins a size and a path fragment such as "/abc.jpg". An empty path
// yields an empty URL.
func ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return ImageBaseURL + size + path
}
