package controllers

import (
	"job-board-api/constants"
	"job-board-api/dto"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
)

type IGraphQLController interface {
	Execute(ctx *gin.Context)
}

type GraphQLController struct {
	schema *graphql.Schema
	logger *slog.Logger
}

func NewGraphQLController(schema *graphql.Schema, logger *slog.Logger) IGraphQLController {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphQLController{schema: schema, logger: logger}
}

// Execute POST /graphql
// フィールドのエラーはレスポンスのerrorsに入れて200で返す。ボディが不正な場合のみ400
func (c *GraphQLController) Execute(ctx *gin.Context) {
	var input dto.GraphQLRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	response := c.schema.Exec(ctx.Request.Context(), input.Query, input.OperationName, input.Variables)
	if len(response.Errors) > 0 {
		c.logger.DebugContext(ctx.Request.Context(), "graphql errors",
			"operation", input.OperationName, "errors", len(response.Errors))
	}
	ctx.JSON(http.StatusOK, response)
}
