package service

import (
	"context"
	"log/slog"
	"strings"

	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/observability"
	"marketplace/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ConnectionService follows and unfollows accounts.
type ConnectionService struct {
	connections repository.ConnectionRepository
}

func NewConnectionService(connections repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{connections: connections}
}

// ToggleConnection follows toHash if fromHash does not follow it yet, and unfollows otherwise.
// Following yourself is a conflict and never reaches the store.
func (s *ConnectionService) ToggleConnection(ctx context.Context, fromHash, toHash string) (*models.ToggleResult, error) {
	if fromHash == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(toHash) == "" {
		return nil, models.NewValidationError("Account hash is required")
	}
	if fromHash == toHash {
		observability.ConnectionToggles.WithLabelValues("rejected").Inc()
		return nil, models.NewConflictError("You cannot follow yourself")
	}

	span, ctx := observability.NewSpan(ctx, "connection.toggle",
		attribute.String("from", fromHash),
		attribute.String("to", toHash),
	)
	defer span.End()

	result, err := s.connections.Toggle(ctx, fromHash, toHash)
	if err != nil {
		span.SetError(err)
		observability.ConnectionToggles.WithLabelValues("failed").Inc()
		if models.StatusFor(err) >= 500 {
			middleware.Logger.ErrorContext(ctx, "connection toggle failed",
				slog.String("to", toHash),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	outcome := "unfollowed"
	if result.NowFollowing {
		outcome = "followed"
	}
	observability.ConnectionToggles.WithLabelValues(outcome).Inc()
	span.AddAttributes(attribute.Bool("now_following", result.NowFollowing), attribute.Int64("followers", result.Followers))
	return result, nil
}
