package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/dashboard"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// DashboardWarmupJob pre-populates summary caches for every entity plus
// the global scope, so landing pages hit warm keys.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Service
	Pool      *pgxpool.Pool
	Logger    *slog.Logger
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(svc *dashboard.Service, pool *pgxpool.Pool, logger *slog.Logger) *DashboardWarmupJob {
	return &DashboardWarmupJob{Dashboard: svc, Pool: pool, Logger: logger}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	logger := j.logger()
	start := time.Now()

	if err := j.Dashboard.Warm(ctx, nil); err != nil {
		logger.Error("warm global summary", slog.Any("error", err))
		return err
	}

	scopes, err := j.fetchScopes(ctx)
	if err != nil {
		logger.Error("load warmup scopes", slog.Any("error", err))
		return err
	}
	for _, scope := range scopes {
		scopeCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		err := j.Dashboard.Warm(scopeCtx, &scope)
		cancel()
		if err != nil {
			logger.Error("warm scope",
				slog.String("entity_type", string(scope.Type)),
				slog.String("entity_id", scope.ID),
				slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed dashboard warmup",
		slog.Int("scopes", len(scopes)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *DashboardWarmupJob) fetchScopes(ctx context.Context) ([]shared.EntityRef, error) {
	if j.Pool == nil {
		return nil, errors.New("dashboard warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `
		SELECT 'hostel', id FROM hostels
		UNION ALL
		SELECT 'corporate', id FROM corporate_offices
		ORDER BY 1, 2`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scopes := make([]shared.EntityRef, 0)
	for rows.Next() {
		var kind, id string
		if err := rows.Scan(&kind, &id); err != nil {
			return nil, err
		}
		ref := shared.EntityRef{Type: shared.EntityHostel, ID: id}
		if kind == "corporate" {
			ref.Type = shared.EntityCorporate
		}
		scopes = append(scopes, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scopes, nil
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTypeDashboardWarmup))
}
