package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebook/internal/metrics"
)

type createRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, errInvalidRecipe)
		return
	}

	resp := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		resp[i] = recipeToResponse(recipes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MinutesToComplete == nil {
		writeError(c, errInvalidRecipe)
		return
	}

	recipe, err := h.recipes.Create(
		c.Request.Context(),
		sessionUserID(c),
		req.Title,
		req.Instructions,
		*req.MinutesToComplete,
	)
	if err != nil {
		h.fail(c, err, errInvalidRecipe)
		return
	}

	metrics.RecipesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, recipeToResponse(*recipe))
}
