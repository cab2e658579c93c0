package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
)

type ArticleService interface {
	Create(ctx context.Context, data domain.ArticleCreationData) (domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id domain.ArticleId) (domain.Article, error)
	Update(ctx context.Context, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error)
	Delete(ctx context.Context, id domain.ArticleId) (domain.Article, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type ArticleStorage interface {
	CreateArticle(ctx context.Context, data domain.ArticleCreationData) (domain.Article, error)
	ArticleByName(ctx context.Context, name domain.ArticleName) (domain.Article, error)
	Article(ctx context.Context, id domain.ArticleId) (domain.Article, error)
	Articles(ctx context.Context) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error)
	DeleteArticle(ctx context.Context, id domain.ArticleId) (domain.Article, error)
	DeleteArticles(ctx context.Context) (int64, error)
}

type Article struct {
	storage ArticleStorage
}

func NewArticle(storage ArticleStorage) *Article {
	return &Article{storage: storage}
}

func duplicateArticle(name domain.ArticleName) error {
	return errors.Conflict(fmt.Sprintf("An article with the name %s already exists", name))
}

// Create stores a new article. The name probe gives the friendly conflict
// message; storage still rejects a duplicate that slips past it.
func (a *Article) Create(ctx context.Context, data domain.ArticleCreationData) (domain.Article, error) {
	var missing []string
	if strings.TrimSpace(data.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(data.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return domain.Article{}, errors.Validation("Required fields missing: " + strings.Join(missing, ", "))
	}
	if data.Price.IsNegative() {
		return domain.Article{}, errors.Validation("Invalid fields: price")
	}
	if data.AvailableQuantity < 0 {
		return domain.Article{}, errors.Validation("Invalid fields: availableQuantity")
	}

	if err := a.ensureNameFree(ctx, data.Name, nil); err != nil {
		return domain.Article{}, err
	}

	article, err := a.storage.CreateArticle(ctx, data)
	if err != nil {
		return domain.Article{}, err
	}
	logger.Log.Info("article created", "article_id", article.Id, "name", article.Name)
	return article, nil
}

func (a *Article) List(ctx context.Context) ([]domain.Article, error) {
	return a.storage.Articles(ctx)
}

func (a *Article) Get(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	return a.storage.Article(ctx, id)
}

// Update merges patch into the article and returns the result. An empty
// patch returns the article unchanged.
func (a *Article) Update(ctx context.Context, id domain.ArticleId, patch domain.ArticlePatch) (domain.Article, error) {
	if patch.IsEmpty() {
		return a.storage.Article(ctx, id)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Article{}, errors.Validation("Invalid fields: name")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return domain.Article{}, errors.Validation("Invalid fields: description")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return domain.Article{}, errors.Validation("Invalid fields: price")
	}
	if patch.AvailableQuantity != nil && *patch.AvailableQuantity < 0 {
		return domain.Article{}, errors.Validation("Invalid fields: availableQuantity")
	}
	if patch.Name != nil {
		if err := a.ensureNameFree(ctx, *patch.Name, &id); err != nil {
			return domain.Article{}, err
		}
	}
	return a.storage.UpdateArticle(ctx, id, patch)
}

func (a *Article) Delete(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	article, err := a.storage.DeleteArticle(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	logger.Log.Info("article deleted", "article_id", id)
	return article, nil
}

func (a *Article) DeleteAll(ctx context.Context) (int64, error) {
	n, err := a.storage.DeleteArticles(ctx)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("articles deleted", "count", n)
	return n, nil
}

// ensureNameFree fails with a conflict if another article already uses name.
// self is the article being renamed, if any.
func (a *Article) ensureNameFree(ctx context.Context, name domain.ArticleName, self *domain.ArticleId) error {
	existing, err := a.storage.ArticleByName(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if self != nil && existing.Id == *self {
		return nil
	}
	return duplicateArticle(name)
}
