package domain

import (
	"context"
	"time"
)

type Project struct {
	ID               int       `json:"id"`
	AccountID        int       `json:"uid"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	Contributions    string    `json:"contributions"`
	Thumbnail        string    `json:"thumbnail"`
	DateCreated      time.Time `json:"date_created"`
}

// ProjectSummary is the listing form: enough for a portfolio card.
type ProjectSummary struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Thumbnail        string `json:"thumbnail"`
	ShortDescription string `json:"short_description"`
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id int) (*Project, error)
	GetByTitle(ctx context.Context, title string) (*Project, error)
	GetAll(ctx context.Context) ([]ProjectSummary, error)
	GetProjectsByAccountID(ctx context.Context, aid int) ([]ProjectSummary, error)
	Insert(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, project *Project) error
	DeleteByAccountID(ctx context.Context, aid int) (int64, error)
}
