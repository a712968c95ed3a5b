package models

import "time"

type MovieType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Movie is a catalog entry. Empty optional strings are stored as NULL.
type Movie struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ReleaseDate time.Time  `json:"releaseDate"`
	Rating      *float64   `json:"rating,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Director    string     `json:"director,omitempty"`
	Duration    *int32     `json:"duration,omitempty"`
	Language    string     `json:"language,omitempty"`
	Country     string     `json:"country,omitempty"`
	PosterURL   string     `json:"posterUrl,omitempty"`
	TypeID      int64      `json:"typeId"`
	Type        *MovieType `json:"type,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MovieLink is an external URL attached to a movie (trailer, review, stream).
type MovieLink struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	URL       string    `json:"url"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
