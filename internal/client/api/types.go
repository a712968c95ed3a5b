package api

import (
	"encoding/json"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type MovieType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate time.Time  `json:"releaseDate"`
	Rating      *float64   `json:"rating,omitempty"`
	Director    string     `json:"director,omitempty"`
	Type        *MovieType `json:"type,omitempty"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type PosterUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	PosterURL string    `json:"posterUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
