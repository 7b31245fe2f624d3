package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/observability"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// crudService is the shape every entity service shares: list, create with a
// validated input, patch by id, delete by id. The per-entity role policy
// lives inside the service, not here.
type crudService[M any, I any, P any] interface {
	List(ctx context.Context) ([]M, error)
	Create(ctx context.Context, input I) (*M, error)
	Update(ctx context.Context, id string, patch P) (*M, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// registerCRUD wires the standard four routes for one entity collection.
func registerCRUD[M any, I any, P any](rg *gin.RouterGroup, path string, svc crudService[M, I, P], logger *observability.Logger) {
	rg.GET(path, listHandler(svc, logger))
	rg.POST(path, createHandler(svc, logger))
	rg.PUT(path+"/:id", updateHandler(svc, logger))
	rg.DELETE(path+"/:id", deleteHandler(svc, logger))
}

func listHandler[M any, I any, P any](svc crudService[M, I, P], logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			RespondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func createHandler[M any, I any, P any](svc crudService[M, I, P], logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input I
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		created, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			RespondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateHandler[M any, I any, P any](svc crudService[M, I, P], logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch P
		if err := c.ShouldBindJSON(&patch); err != nil {
			respondBindError(c, err)
			return
		}

		updated, err := svc.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			RespondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteHandler[M any, I any, P any](svc crudService[M, I, P], logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			RespondError(c, logger, err)
			return
		}
		if !deleted {
			RespondError(c, logger, contextutils.ErrRecordNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
