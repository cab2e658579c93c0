package handler

import (
	"net/http"

	"github.com/itchan-dev/shopkeeper/shared/api"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

func (h *Handler) articleResponse(a domain.Article) api.ArticleResponse {
	return api.ArticleResponse{Article: a, DescriptionHTML: h.markdown.Render(a.Description)}
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body api.CreateArticleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	article, err := h.article.Create(r.Context(), domain.ArticleCreationData{
		Name:              body.Name,
		Description:       body.Description,
		Price:             *body.Price,
		AvailableQuantity: *body.AvailableQuantity,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.articleResponse(article))
}

func (h *Handler) GetArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.article.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	resp := make([]api.ArticleResponse, len(articles))
	for i, a := range articles {
		resp[i] = h.articleResponse(a)
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "articleId", "Article")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	article, err := h.article.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.articleResponse(article))
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "articleId", "Article")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateArticleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	article, err := h.article.Update(r.Context(), id, domain.ArticlePatch{
		Name:              body.Name,
		Description:       body.Description,
		Price:             body.Price,
		AvailableQuantity: body.AvailableQuantity,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.articleResponse(article))
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "articleId", "Article")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	article, err := h.article.Delete(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.articleResponse(article))
}

func (h *Handler) DeleteArticles(w http.ResponseWriter, r *http.Request) {
	n, err := h.article.DeleteAll(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.DeleteManyResponse{Success: true, DeletedCount: n})
}
