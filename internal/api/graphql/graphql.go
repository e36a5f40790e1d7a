package graphql

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/api/shared/executor"
	"github.com/feral-file/ff-tokenomics/internal/logger"
)

// Handler defines the interface for GraphQL API handlers
type Handler interface {
	// HandleGraphQL handles GraphQL requests
	HandleGraphQL(c *gin.Context)
}

// gqlHandler implements the Handler interface using gqlgen
type gqlHandler struct {
	debug  bool
	server *handler.Server
}

// NewHandler creates a GraphQL handler serving the read side of the executor
func NewHandler(debug bool, exec executor.Executor) (Handler, error) {
	schema, err := NewExecutableSchema(NewResolver(exec))
	if err != nil {
		return nil, err
	}

	srv := handler.New(schema)
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetErrorPresenter(ErrorPresenter)
	srv.SetRecoverFunc(RecoverFunc)

	h := &gqlHandler{
		debug:  debug,
		server: srv,
	}
	srv.AroundOperations(h.logOperation)

	return h, nil
}

// logOperation logs each operation at debug level
func (h *gqlHandler) logOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	if h.debug {
		opctx := graphql.GetOperationContext(ctx)
		logger.DebugCtx(ctx, "GraphQL operation",
			zap.String("operation", opctx.OperationName),
			zap.Int("variables", len(opctx.Variables)),
		)
	}
	return next(ctx)
}

// HandleGraphQL processes GraphQL queries
func (h *gqlHandler) HandleGraphQL(c *gin.Context) {
	h.server.ServeHTTP(c.Writer, c.Request)
}

// SetupRoutes configures GraphQL API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	router.GET("/graphql", handler.HandleGraphQL)
	router.POST("/graphql", handler.HandleGraphQL)
}
