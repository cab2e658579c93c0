package pg

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget(name string) domain.ArticleCreationData {
	return domain.ArticleCreationData{
		Name:              name,
		Description:       "d",
		Price:             decimal.RequireFromString("5.25"),
		AvailableQuantity: 10,
	}
}

func TestCreateArticle(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	article, err := storage.CreateArticle(ctx, widget("Widget"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, article.Id)
	assert.Equal(t, "Widget", article.Name)
	assert.True(t, decimal.RequireFromString("5.25").Equal(article.Price))
	assert.Equal(t, int64(10), article.AvailableQuantity)

	_, err = storage.CreateArticle(ctx, widget("Widget"))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, internal_errors.StatusCode(err))
	assert.Equal(t, "An article with the name Widget already exists", err.Error())
}

func TestCreateArticleConcurrentSameName(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.CreateArticle(ctx, widget("Race"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if internal_errors.StatusCode(err) == http.StatusForbidden {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one create wins")
	assert.Equal(t, attempts-1, conflicts)

	articles, err := storage.Articles(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestArticleReads(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	articles, err := storage.Articles(ctx)
	require.NoError(t, err)
	assert.Empty(t, articles)

	first, err := storage.CreateArticle(ctx, widget("First"))
	require.NoError(t, err)
	_, err = storage.CreateArticle(ctx, widget("Second"))
	require.NoError(t, err)

	articles, err = storage.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "First", articles[0].Name)
	assert.Equal(t, "Second", articles[1].Name)

	got, err := storage.Article(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, first.Id, got.Id)

	byName, err := storage.ArticleByName(ctx, "First")
	require.NoError(t, err)
	assert.Equal(t, first.Id, byName.Id)

	_, err = storage.ArticleByName(ctx, "first")
	assert.True(t, internal_errors.IsNotFound(err), "name match is exact")

	_, err = storage.Article(ctx, uuid.New())
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestUpdateArticle(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	article, err := storage.CreateArticle(ctx, widget("Lamp"))
	require.NoError(t, err)
	_, err = storage.CreateArticle(ctx, widget("Chair"))
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		qty := int64(3)
		updated, err := storage.UpdateArticle(ctx, article.Id, domain.ArticlePatch{AvailableQuantity: &qty})
		require.NoError(t, err)
		assert.Equal(t, int64(3), updated.AvailableQuantity)
		assert.Equal(t, "Lamp", updated.Name)
		assert.Equal(t, "d", updated.Description)
		assert.True(t, article.Price.Equal(updated.Price))
		assert.False(t, updated.UpdatedAt.Before(article.UpdatedAt))
	})

	t.Run("price", func(t *testing.T) {
		price := decimal.RequireFromString("9.99")
		updated, err := storage.UpdateArticle(ctx, article.Id, domain.ArticlePatch{Price: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(updated.Price))
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		name := "Chair"
		_, err := storage.UpdateArticle(ctx, article.Id, domain.ArticlePatch{Name: &name})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, internal_errors.StatusCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		name := "Ghost"
		_, err := storage.UpdateArticle(ctx, uuid.New(), domain.ArticlePatch{Name: &name})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestDeleteArticles(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	article, err := storage.CreateArticle(ctx, widget("Desk"))
	require.NoError(t, err)

	deleted, err := storage.DeleteArticle(ctx, article.Id)
	require.NoError(t, err)
	assert.Equal(t, article.Id, deleted.Id)
	assert.Equal(t, "Desk", deleted.Name)

	_, err = storage.DeleteArticle(ctx, article.Id)
	assert.True(t, internal_errors.IsNotFound(err))

	for _, name := range []string{"A", "B", "C"} {
		_, err := storage.CreateArticle(ctx, widget(name))
		require.NoError(t, err)
	}
	n, err := storage.DeleteArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = storage.DeleteArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestArticlePriceRoundTrip(t *testing.T) {
	ctx := context.Background()
	truncate(t, "articles")

	prices := []string{"5.999", "0.0001", "10000000000", "123456789012345.67"}
	for _, p := range prices {
		t.Run(p, func(t *testing.T) {
			data := widget("priced " + p)
			data.Price = decimal.RequireFromString(p)

			created, err := storage.CreateArticle(ctx, data)
			require.NoError(t, err)
			assert.True(t, data.Price.Equal(created.Price), "created %s", created.Price)

			fetched, err := storage.Article(ctx, created.Id)
			require.NoError(t, err)
			assert.True(t, data.Price.Equal(fetched.Price), "fetched %s", fetched.Price)
		})
	}

	t.Run("update keeps scale", func(t *testing.T) {
		article, err := storage.CreateArticle(ctx, widget("rescaled"))
		require.NoError(t, err)
		price := decimal.RequireFromString("19.995")
		updated, err := storage.UpdateArticle(ctx, article.Id, domain.ArticlePatch{Price: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(updated.Price))
	})
}
