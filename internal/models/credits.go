package models

// Cast is a person credited in front of the camera.
type Cast struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character"`
	Order      int    `json:"order"`
	Department string `json:"department"`
	ProfileURL string `json:"profile_url"`
}

// Crew is a person credited behind the camera.
type Crew struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
	ProfileURL string `json:"profile_url"`
}

// Credits groups the cast and crew of a work.
type Credits struct {
	WorkID int    `json:"work_id"`
	Cast   []Cast `json:"cast"`
	Crew   []Crew `json:"crew"`
}

// Directors returns crew members whose job is Director.
func (c Credits) Directors() []Crew {
	var out []Crew
	for _, m := range c.Crew {
		if m.Job == "Director" {
			out = append(out, m)
		}
	}
	return out
}

// Person is the cast detail record with the works the person appears in.
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	Deathday           string `json:"deathday,omitempty"`
	PlaceOfBirth       string `json:"place_of_birth"`
	KnownForDepartment string `json:"known_for_department"`
	ProfileURL         string `json:"profile_url"`
	Works              []Work `json:"works"`
}
