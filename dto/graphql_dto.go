package dto

// GraphQLRequest POST /graphql のリクエストボディ
type GraphQLRequest struct {
	Query         string         `json:"query" binding:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}
