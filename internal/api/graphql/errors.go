package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/logger"
)

// ErrorPresenter formats errors the same way as the REST API.
// gqlgen calls it for every error.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	isGQLErr := errors.As(err, &gqlErr)
	if !isGQLErr {
		gqlErr = &gqlerror.Error{
			Message: err.Error(),
		}
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		// Parse and validation errors wrap nothing and are safe to show
		if isGQLErr && gqlErr.Unwrap() == nil {
			return gqlErr
		}
		return handleInternalError(ctx, err, gqlErr)
	}

	switch apiErr.Code {
	case apierrors.ErrCodeInternalError, apierrors.ErrCodeServiceError, apierrors.ErrCodeDatabaseError:
		return handleInternalError(ctx, err, gqlErr)
	default:
		gqlErr.Message = apiErr.Message
		gqlErr.Extensions = map[string]interface{}{
			"code":    string(apiErr.Code),
			"message": apiErr.Message,
		}
		if apiErr.Details != "" {
			gqlErr.Extensions["details"] = apiErr.Details
		}
	}

	return gqlErr
}

// handleInternalError logs the error and hides it behind a generic internal error
func handleInternalError(ctx context.Context, err error, gqlErr *gqlerror.Error) *gqlerror.Error {
	logger.ErrorCtx(ctx, err, zap.String("error", "Unhandled GraphQL error"))
	return &gqlerror.Error{
		Message: "Internal server error",
		Path:    gqlErr.Path,
		Extensions: map[string]interface{}{
			"code":    string(apierrors.ErrCodeInternalError),
			"message": "Internal server error",
		},
	}
}

// RecoverFunc handles panics in resolvers
func RecoverFunc(ctx context.Context, err interface{}) error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", err), zap.Any("panic", err))
	return apierrors.NewInternalError("Internal server error")
}
