package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"suilog/internal/models"
)

type ProjectRepository interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id, name, description, start_date, status, completed_at,
       nft_minted, nft_object_id, members
       FROM projects WHERE id = $1`
	p := &models.Project{}
	var nftObjectID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.Status, &p.CompletedAt,
		&p.NFTMinted, &nftObjectID, pq.Array(&p.Members),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.NFTObjectID = nftObjectID.String
	if p.Members == nil {
		p.Members = []string{}
	}
	return p, nil
}

// Save upserts the single project row.
func (r *projectRepository) Save(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, description, start_date, status, completed_at,
			nft_minted, nft_object_id, members)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description,
			start_date=EXCLUDED.start_date, status=EXCLUDED.status,
			completed_at=EXCLUDED.completed_at, nft_minted=EXCLUDED.nft_minted,
			nft_object_id=EXCLUDED.nft_object_id, members=EXCLUDED.members`
	var nftObjectID interface{}
	if project.NFTObjectID != "" {
		nftObjectID = project.NFTObjectID
	}
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.StartDate, project.Status,
		project.CompletedAt, project.NFTMinted, nftObjectID, pq.Array(project.Members),
	)
	return err
}
