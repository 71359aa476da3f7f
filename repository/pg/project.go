package pg

import (
	"context"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ProjectPostgresRepository struct {
	pool *pgxpool.Pool
}

// Title is UNIQUE at the store level. The handler pre-check only exists
// to produce a friendly conflict body; this constraint is what actually
// closes the concurrent-create race.
func CreateProjectTable() string {
	return `CREATE TABLE IF NOT EXISTS projects
(
	id SERIAL NOT NULL PRIMARY KEY,
	aid INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	title VARCHAR(200) NOT NULL UNIQUE,
	short_description VARCHAR(300) NOT NULL DEFAULT '',
	long_description TEXT NOT NULL DEFAULT '',
	contributions TEXT NOT NULL DEFAULT '',
	thumbnail VARCHAR(300) NOT NULL DEFAULT '',
	date_created TIMESTAMPTZ NOT NULL DEFAULT now()
);`
}

const projectColumns = "id, aid, title, short_description, long_description, contributions, thumbnail, date_created"

func scanProject(row pgx.Row) (*domain.Project, error) {
	project := domain.Project{}
	err := row.Scan(
		&project.ID,
		&project.AccountID,
		&project.Title,
		&project.ShortDescription,
		&project.LongDescription,
		&project.Contributions,
		&project.Thumbnail,
		&project.DateCreated,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (pr *ProjectPostgresRepository) GetByID(ctx context.Context, id int) (*domain.Project, error) {
	row := pr.pool.QueryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	return scanProject(row)
}

func (pr *ProjectPostgresRepository) GetByTitle(ctx context.Context, title string) (*domain.Project, error) {
	row := pr.pool.QueryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE title = $1", title)
	return scanProject(row)
}

func (pr *ProjectPostgresRepository) GetAll(ctx context.Context) ([]domain.ProjectSummary, error) {
	rows, err := pr.pool.Query(ctx, "SELECT id, title, thumbnail, short_description FROM projects ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

func (pr *ProjectPostgresRepository) GetProjectsByAccountID(ctx context.Context, aid int) ([]domain.ProjectSummary, error) {
	rows, err := pr.pool.Query(ctx, "SELECT id, title, thumbnail, short_description FROM projects WHERE aid = $1 ORDER BY id ASC", aid)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]domain.ProjectSummary, error) {
	ret := make([]domain.ProjectSummary, 0)
	for rows.Next() {
		summary := domain.ProjectSummary{}
		rows.Scan(&summary.ID, &summary.Title, &summary.Thumbnail, &summary.ShortDescription)
		ret = append(ret, summary)
	}
	return ret, nil
}

func (pr *ProjectPostgresRepository) Insert(ctx context.Context, project *domain.Project) error {
	row := pr.pool.QueryRow(
		ctx,
		`INSERT INTO projects (aid, title, short_description, long_description, contributions, thumbnail)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, date_created`,
		project.AccountID,
		project.Title,
		project.ShortDescription,
		project.LongDescription,
		project.Contributions,
		project.Thumbnail,
	)
	return row.Scan(&project.ID, &project.DateCreated)
}

func (pr *ProjectPostgresRepository) Update(ctx context.Context, project *domain.Project) error {
	_, err := pr.pool.Exec(
		ctx,
		`UPDATE projects SET title = $1, short_description = $2, long_description = $3, contributions = $4, thumbnail = $5
		WHERE id = $6 AND aid = $7`,
		project.Title,
		project.ShortDescription,
		project.LongDescription,
		project.Contributions,
		project.Thumbnail,
		project.ID,
		project.AccountID,
	)
	return err
}

func (pr *ProjectPostgresRepository) Delete(ctx context.Context, project *domain.Project) error {
	result, err := pr.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1 AND aid = $2", project.ID, project.AccountID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (pr *ProjectPostgresRepository) DeleteByAccountID(ctx context.Context, aid int) (int64, error) {
	result, err := pr.pool.Exec(ctx, "DELETE FROM projects WHERE aid = $1", aid)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func NewProjectPostgresRepository(pool *pgxpool.Pool) *ProjectPostgresRepository {
	return &ProjectPostgresRepository{
		pool: pool,
	}
}
