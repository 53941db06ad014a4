package blogs

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const selectBlogPattern = `SELECT\s+id,\s*title,\s*author,\s*main_content,\s*created_date,\s*comments\s+FROM\s+blogs`

func blogRow() *sqlmock.Rows {
	author := []byte(`{"id":"u-1","email":"alice@example.com","fullName":"Alice Smith"}`)
	comments := []byte(`[{"id":"c-1","text":"hi","owner":{"id":"u-2","fullName":"Bob Stone"},"ownerId":"u-2"}]`)
	created := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	return sqlmock.NewRows([]string{"id", "title", "author", "main_content", "created_date", "comments"}).
		AddRow("b-1", "Title", author, "Body", created, comments)
}

func TestGetByID_DecodesEmbeddedDocuments(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogPattern + `\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("b-1").
		WillReturnRows(blogRow())

	got, err := repo.GetByID(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Author.ID != "u-1" || got.Author.FullName != "Alice Smith" {
		t.Fatalf("unexpected author: %+v", got.Author)
	}
	if got.CreatedDate != "2026-03-15" {
		t.Fatalf("want date-only createdDate, got %q", got.CreatedDate)
	}
	if len(got.Comments) != 1 || got.Comments[0].OwnerID != "u-2" {
		t.Fatalf("unexpected comments: %+v", got.Comments)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogPattern).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+blogs\s*\(title,\s*author,\s*main_content,\s*created_date,\s*comments\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`

	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("b-9"))

	blog := &models.Blog{
		Title:       "Title",
		Author:      models.AuthorRef{ID: "u-1", Email: "alice@example.com", FullName: "Alice Smith"},
		MainContent: "Body",
		CreatedDate: "2026-03-15",
		Comments:    []models.Comment{},
	}
	got, err := repo.Create(context.Background(), blog)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "b-9" {
		t.Fatalf("unexpected id: %q", got.ID)
	}
}

func TestUpdate_ReturnsPreUpdateSnapshot(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogPattern + `\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("b-1").
		WillReturnRows(blogRow())
	mock.ExpectExec(`^UPDATE\s+blogs\s+SET\s+title\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2$`).
		WithArgs("New Title", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	title := "New Title"
	previous, err := repo.Update(context.Background(), "b-1", models.BlogPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if previous.Title != "Title" {
		t.Fatalf("want pre-update snapshot, got title %q", previous.Title)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogPattern).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	title := "x"
	_, err := repo.Update(context.Background(), "ghost", models.BlogPatch{Title: &title})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestReplaceComments_ReportsMatchedCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE\s+blogs\s+SET\s+comments\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2$`).
		WithArgs([]byte(`[{"id":"c-1","text":"hi","owner":{"id":"u-1","fullName":"Alice Smith"},"ownerId":"u-1"}]`), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	comments := []models.Comment{{
		ID:      "c-1",
		Text:    "hi",
		Owner:   models.CommentOwner{ID: "u-1", FullName: "Alice Smith"},
		OwnerID: "u-1",
	}}
	matched, err := repo.ReplaceComments(context.Background(), "b-1", comments)
	if err != nil {
		t.Fatalf("ReplaceComments error: %v", err)
	}
	if matched != 1 {
		t.Fatalf("want matched=1, got %d", matched)
	}
}

func TestReplaceComments_NilBecomesEmptyList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+blogs\s+SET\s+comments`).
		WithArgs([]byte(`[]`), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.ReplaceComments(context.Background(), "b-1", nil); err != nil {
		t.Fatalf("ReplaceComments error: %v", err)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBlogPattern).
		WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete_UnknownIDReportsZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+blogs\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("want deleted=0, got %d", deleted)
	}
}
