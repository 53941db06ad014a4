package blogs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/server/models"
)

const dateLayout = "2006-01-02"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	author, err := json.Marshal(blog.Author)
	if err != nil {
		return nil, fmt.Errorf("marshal author: %w", err)
	}
	comments, err := json.Marshal(blog.Comments)
	if err != nil {
		return nil, fmt.Errorf("marshal comments: %w", err)
	}

	query :=
		`INSERT INTO blogs (title, author, main_content, created_date, comments)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		blog.Title, author, blog.MainContent, blog.CreatedDate, comments).Scan(&blog.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return blog, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	query :=
		`SELECT id, title, author, main_content, created_date, comments FROM blogs
		 WHERE id = $1
		 `

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return blog, nil
}

// Update applies the non-nil patch fields and returns the pre-update
// snapshot. common.ErrorNotFound when the blog does not exist. The read and
// the write are two independent statements; concurrent edits are
// last-write-wins.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.MainContent != nil {
		args = append(args, *patch.MainContent)
		sets = append(sets, fmt.Sprintf("main_content = $%d", len(args)))
	}

	if len(sets) == 0 {
		return current, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE blogs SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return current, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return res.RowsAffected()
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Blog, error) {
	query :=
		`SELECT id, title, author, main_content, created_date, comments FROM blogs
		 ORDER BY created_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// ReplaceComments overwrites the blog's embedded comment list. Returns the
// number of matched rows (0 when the blog vanished between read and write).
func (r *PostgresRepository) ReplaceComments(ctx context.Context, blogID string, comments []models.Comment) (int64, error) {
	if comments == nil {
		comments = []models.Comment{}
	}
	encoded, err := json.Marshal(comments)
	if err != nil {
		return 0, fmt.Errorf("marshal comments: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE blogs SET comments = $1 WHERE id = $2`, encoded, blogID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	var (
		blog        models.Blog
		author      []byte
		comments    []byte
		createdDate time.Time
	)

	err := row.Scan(&blog.ID, &blog.Title, &author, &blog.MainContent, &createdDate, &comments)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(author, &blog.Author); err != nil {
		return nil, fmt.Errorf("unmarshal author: %w", err)
	}
	blog.Comments = []models.Comment{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &blog.Comments); err != nil {
			return nil, fmt.Errorf("unmarshal comments: %w", err)
		}
	}
	blog.CreatedDate = createdDate.Format(dateLayout)

	return &blog, nil
}
