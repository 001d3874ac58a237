package repository

import (
	"sort"
	"time"

	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/tmdb"
)

func toWork(r tmdb.Result, t models.WorkType) models.Work {
	w := models.Work{
		ID:           r.ID,
		Type:         t,
		Title:        r.Title,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		PosterURL:    models.ImageURL(models.TMDBImageBaseW500, r.PosterPath),
		BackdropURL:  models.ImageURL(models.TMDBImageBaseW780, r.BackdropPath),
		ReleaseDate:  r.ReleaseDate,
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		Popularity:   r.Popularity,
		GenreIDs:     r.GenreIDs,
	}
	w.OriginalTitle = r.OriginalTitle
	if t == models.WorkTypeTVShow {
		w.Title = r.Name
		w.OriginalTitle = r.OriginalName
		w.ReleaseDate = r.FirstAirDate
	}
	if w.GenreIDs == nil {
		w.GenreIDs = []int{}
	}
	return w
}

func toPage(r *tmdb.PagedResults, t models.WorkType) *models.Page {
	works := make([]models.Work, len(r.Results))
	for i, res := range r.Results {
		works[i] = toWork(res, t)
	}
	return &models.Page{
		Page:         r.Page,
		TotalPages:   models.ClampTotalPages(r.TotalPages),
		TotalResults: r.TotalResults,
		Works:        works,
	}
}

func toWorkDetail(d *tmdb.Detail, t models.WorkType) *models.WorkDetail {
	genres := make([]models.Genre, len(d.Genres))
	genreIDs := make([]int, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = models.Genre{ID: g.ID, Name: g.Name, Source: t}
		genreIDs[i] = g.ID
	}

	work := toWork(d.Result, t)
	work.GenreIDs = genreIDs

	runtime := d.Runtime
	if t == models.WorkTypeTVShow && len(d.EpisodeRunTime) > 0 {
		runtime = d.EpisodeRunTime[0]
	}

	return &models.WorkDetail{
		Work:             work,
		Runtime:          runtime,
		Genres:           genres,
		Tagline:          d.Tagline,
		Status:           d.Status,
		Homepage:         d.Homepage,
		OriginalLanguage: d.OriginalLanguage,
		NumberOfSeasons:  d.NumberOfSeasons,
		NumberOfEpisodes: d.NumberOfEpisodes,
	}
}

func toCredits(c *tmdb.CreditsResponse, workID int) *models.Credits {
	out := &models.Credits{
		WorkID: workID,
		Cast:   make([]models.Cast, len(c.Cast)),
		Crew:   make([]models.Crew, len(c.Crew)),
	}
	for i, m := range c.Cast {
		out.Cast[i] = models.Cast{
			ID:         m.ID,
			Name:       m.Name,
			Character:  m.Character,
			Order:      m.Order,
			Department: m.KnownForDepartment,
			ProfileURL: models.ImageURL(models.TMDBImageBaseW185, m.ProfilePath),
		}
	}
	sort.SliceStable(out.Cast, func(i, j int) bool { return out.Cast[i].Order < out.Cast[j].Order })
	for i, m := range c.Crew {
		out.Crew[i] = models.Crew{
			ID:         m.ID,
			Name:       m.Name,
			Job:        m.Job,
			Department: m.Department,
			ProfileURL: models.ImageURL(models.TMDBImageBaseW185, m.ProfilePath),
		}
	}
	return out
}

func toVideos(results []tmdb.VideoResult) []models.Video {
	videos := make([]models.Video, 0, len(results))
	for _, v := range results {
		video := models.Video{
			ID:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
			Language: v.Language,
		}
		switch v.Site {
		case "YouTube":
			video.URL = models.YouTubeWatchBase + v.Key
			video.ThumbnailURL = models.YouTubeThumbnailBase + v.Key + "/hqdefault.jpg"
		case "Vimeo":
			video.URL = models.VimeoWatchBase + v.Key
		}
		videos = append(videos, video)
	}
	return videos
}

func toReviewPage(r *tmdb.ReviewsResponse) *models.ReviewPage {
	reviews := make([]models.Review, len(r.Results))
	for i, rv := range r.Results {
		review := models.Review{
			ID:      rv.ID,
			Author:  rv.Author,
			Content: rv.Content,
			URL:     rv.URL,
		}
		if rv.AuthorDetails.Rating != nil {
			review.Rating = *rv.AuthorDetails.Rating
		}
		if ts, err := time.Parse(time.RFC3339, rv.CreatedAt); err == nil {
			review.CreatedAt = ts
		}
		reviews[i] = review
	}
	return &models.ReviewPage{
		Page:         r.Page,
		TotalPages:   models.ClampTotalPages(r.TotalPages),
		TotalResults: r.TotalResults,
		Reviews:      reviews,
	}
}

func toWatchProviders(r *tmdb.WatchProvidersResponse, region string) *models.WatchProviders {
	out := &models.WatchProviders{Region: region, Providers: []models.WatchProvider{}}
	rp, ok := r.Results[region]
	if !ok {
		return out
	}
	out.Link = rp.Link

	groups := []struct {
		kind      models.OfferKind
		providers []tmdb.Provider
	}{
		{models.OfferFlatrate, rp.Flatrate},
		{models.OfferFree, rp.Free},
		{models.OfferAds, rp.Ads},
		{models.OfferRent, rp.Rent},
		{models.OfferBuy, rp.Buy},
	}
	for _, g := range groups {
		for _, p := range g.providers {
			out.Providers = append(out.Providers, models.WatchProvider{
				ID:              p.ProviderID,
				Name:            p.ProviderName,
				LogoURL:         models.ImageURL(models.TMDBImageBaseW92, p.LogoPath),
				DisplayPriority: p.DisplayPriority,
				Kind:            g.kind,
			})
		}
	}
	return out
}

func toPerson(p *tmdb.PersonResponse, c *tmdb.PersonCreditsResponse) *models.Person {
	person := &models.Person{
		ID:                 p.ID,
		Name:               p.Name,
		Biography:          p.Biography,
		Birthday:           p.Birthday,
		Deathday:           p.Deathday,
		PlaceOfBirth:       p.PlaceOfBirth,
		KnownForDepartment: p.KnownForDepartment,
		ProfileURL:         models.ImageURL(models.TMDBImageBaseW185, p.ProfilePath),
		Works:              []models.Work{},
	}

	seen := make(map[models.WorkKey]bool)
	for _, group := range [][]tmdb.Result{c.Cast, c.Crew} {
		for _, r := range group {
			var t models.WorkType
			switch r.MediaType {
			case "movie":
				t = models.WorkTypeMovie
			case "tv":
				t = models.WorkTypeTVShow
			default:
				continue
			}
			w := toWork(r, t)
			if seen[w.Key()] {
				continue
			}
			seen[w.Key()] = true
			person.Works = append(person.Works, w)
		}
	}
	sort.SliceStable(person.Works, func(i, j int) bool {
		return person.Works[i].Popularity > person.Works[j].Popularity
	})
	return person
}
