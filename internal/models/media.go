package models

import "time"

// Video is a trailer, teaser or clip attached to a work.
type Video struct {
	ID           string `json:"id"`
	Key          string `json:"key"`
	Name         string `json:"name"`
	Site         string `json:"site"`
	Type         string `json:"type"`
	Official     bool   `json:"official"`
	Language     string `json:"language"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// IsTrailer reports whether the video is a trailer or teaser.
func (v Video) IsTrailer() bool {
	return v.Type == "Trailer" || v.Type == "Teaser"
}

// Trailers filters videos down to trailers and teasers.
func Trailers(videos []Video) []Video {
	out := make([]Video, 0, len(videos))
	for _, v := range videos {
		if v.IsTrailer() {
			out = append(out, v)
		}
	}
	return out
}

// Review is a user review of a work.
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// OfferKind says how a provider offers a work.
type OfferKind string

const (
	OfferFlatrate OfferKind = "flatrate"
	OfferRent     OfferKind = "rent"
	OfferBuy      OfferKind = "buy"
	OfferFree     OfferKind = "free"
	OfferAds      OfferKind = "ads"
)

// WatchProvider is a streaming, rental or purchase offer.
type WatchProvider struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	LogoURL         string    `json:"logo_url"`
	DisplayPriority int       `json:"display_priority"`
	Kind            OfferKind `json:"kind"`
}

// WatchProviders lists the offers of one region.
type WatchProviders struct {
	Region    string          `json:"region"`
	Link      string          `json:"link"`
	Providers []WatchProvider `json:"providers"`
}
