package tmdb

// Result is one entry of a paged movie or TV list. Movies fill Title and
// ReleaseDate, TV shows fill Name and FirstAirDate.
type Result struct {
	ID            int     `json:"id"`
	MediaType     string  `json:"media_type,omitempty"`
	Title         string  `json:"title,omitempty"`
	Name          string  `json:"name,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	OriginalName  string  `json:"original_name,omitempty"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
}

// PagedResults is the envelope of every paged list endpoint.
type PagedResults struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the genre/{movie|tv}/list response.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// Detail is the movie/{id} or tv/{id} response.
type Detail struct {
	Result
	Genres           []Genre `json:"genres"`
	Runtime          int     `json:"runtime,omitempty"`
	EpisodeRunTime   []int   `json:"episode_run_time,omitempty"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Homepage         string  `json:"homepage"`
	OriginalLanguage string  `json:"original_language"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
}

// CastMember is a cast entry of a credits response.
type CastMember struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Character          string `json:"character"`
	Order              int    `json:"order"`
	KnownForDepartment string `json:"known_for_department"`
	ProfilePath        string `json:"profile_path"`
}

// CrewMember is a crew entry of a credits response.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// CreditsResponse is the {movie|tv}/{id}/credits response.
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// VideoResult is one video of a work.
type VideoResult struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
	Language string `json:"iso_639_1"`
}

// VideosResponse is the {movie|tv}/{id}/videos response.
type VideosResponse struct {
	ID      int           `json:"id"`
	Results []VideoResult `json:"results"`
}

// AuthorDetails carries the optional rating of a review.
type AuthorDetails struct {
	Username string   `json:"username"`
	Rating   *float64 `json:"rating"`
}

// ReviewResult is one review of a work.
type ReviewResult struct {
	ID            string        `json:"id"`
	Author        string        `json:"author"`
	AuthorDetails AuthorDetails `json:"author_details"`
	Content       string        `json:"content"`
	URL           string        `json:"url"`
	CreatedAt     string        `json:"created_at"`
}

// ReviewsResponse is the {movie|tv}/{id}/reviews response.
type ReviewsResponse struct {
	ID           int            `json:"id"`
	Page         int            `json:"page"`
	Results      []ReviewResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Provider is a watch provider entry.
type Provider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders groups the offers available in one region.
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
	Free     []Provider `json:"free,omitempty"`
	Ads      []Provider `json:"ads,omitempty"`
}

// WatchProvidersResponse is the {movie|tv}/{id}/watch/providers response,
// keyed by ISO 3166-1 region code.
type WatchProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// PersonResponse is the person/{id} response.
type PersonResponse struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	Deathday           string `json:"deathday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	KnownForDepartment string `json:"known_for_department"`
	ProfilePath        string `json:"profile_path"`
}

// PersonCreditsResponse is the person/{id}/combined_credits response.
type PersonCreditsResponse struct {
	ID   int      `json:"id"`
	Cast []Result `json:"cast"`
	Crew []Result `json:"crew"`
}

type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
