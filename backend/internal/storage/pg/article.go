package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	sharedpg "github.com/itchan-dev/shopkeeper/shared/storage/pg"
)

const articleColumns = "id, name, description, price, available_quantity, created_at, updated_at"

func duplicateArticle(name domain.ArticleName) error {
	return internal_errors.Conflict(fmt.Sprintf("An article with the name %s already exists", name))
}

// =========================================================================
// Public Methods (satisfy the service.ArticleStorage interface)
// =========================================================================

// CreateArticle inserts an article. The unique index on name turns a lost
// race between two creates into a conflict.
func (s *Storage) CreateArticle(ctx context.Context, data domain.ArticleCreationData) (domain.Article, error) {
	var article domain.Article
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		article, err = s.createArticle(ctx, tx, data)
		return err
	})
	return article, err
}

// ArticleByName returns the article with exactly this name.
func (s *Storage) ArticleByName(ctx context.Context, name domain.ArticleName) (domain.Article, error) {
	return s.articleBy(ctx, s.db, "name", name)
}

func (s *Storage) Article(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	return s.articleBy(ctx, s.db, "id", id)
}

func (s *Storage) Articles(ctx context.Context) ([]domain.Article, error) {
	return s.articles(ctx, s.db)
}

func (s *Storage) UpdateArticle(ctx context.Context, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error) {
	var article domain.Article
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		article, err = s.updateArticle(ctx, tx, id, patch)
		return err
	})
	return article, err
}

// DeleteArticle removes one article and returns it as it was.
func (s *Storage) DeleteArticle(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	var article domain.Article
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		article, err = s.deleteArticle(ctx, tx, id)
		return err
	})
	return article, err
}

// DeleteArticles removes every article and reports how many were removed.
func (s *Storage) DeleteArticles(ctx context.Context) (int64, error) {
	var n int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = s.deleteArticles(ctx, tx)
		return err
	})
	return n, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) createArticle(ctx context.Context, q Querier, data domain.ArticleCreationData) (domain.Article, error) {
	row := q.QueryRowContext(ctx, `
		INSERT INTO articles(id, name, description, price, available_quantity)
		VALUES($1, $2, $3, $4, $5)
		RETURNING `+articleColumns,
		uuid.New(), data.Name, data.Description, data.Price, data.AvailableQuantity,
	)
	article, err := scanArticle(row)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.Article{}, duplicateArticle(data.Name)
		}
		return domain.Article{}, fmt.Errorf("failed to insert article: %w", err)
	}
	return article, nil
}

// column is never user input.
func (s *Storage) articleBy(ctx context.Context, q Querier, column string, value any) (domain.Article, error) {
	row := q.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE "+column+" = $1", value)
	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Article{}, internal_errors.NotFound("Article not found")
		}
		return domain.Article{}, fmt.Errorf("failed to query article: %w", err)
	}
	return article, nil
}

func (s *Storage) articles(ctx context.Context, q Querier) ([]domain.Article, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+articleColumns+" FROM articles ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, nil
}

func (s *Storage) updateArticle(ctx context.Context, q Querier, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error) {
	row := q.QueryRowContext(ctx, `
		UPDATE articles SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			available_quantity = COALESCE($5, available_quantity),
			updated_at = now()
		WHERE id = $1
		RETURNING `+articleColumns,
		id, patch.Name, patch.Description, patch.Price, patch.AvailableQuantity,
	)
	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Article{}, internal_errors.NotFound("Article not found")
		}
		if sharedpg.IsUniqueViolation(err) && patch.Name != nil {
			return domain.Article{}, duplicateArticle(*patch.Name)
		}
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	return article, nil
}

func (s *Storage) deleteArticle(ctx context.Context, q Querier, id domain.ArticleId) (domain.Article, error) {
	row := q.QueryRowContext(ctx, "DELETE FROM articles WHERE id = $1 RETURNING "+articleColumns, id)
	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Article{}, internal_errors.NotFound("Article not found")
		}
		return domain.Article{}, fmt.Errorf("failed to delete article: %w", err)
	}
	return article, nil
}

func (s *Storage) deleteArticles(ctx context.Context, q Querier) (int64, error) {
	result, err := q.ExecContext(ctx, "DELETE FROM articles")
	if err != nil {
		return 0, fmt.Errorf("failed to delete articles: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows for articles deletion: %w", err)
	}
	return n, nil
}

func scanArticle(row rowScanner) (domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.Id, &a.Name, &a.Description, &a.Price, &a.AvailableQuantity, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
