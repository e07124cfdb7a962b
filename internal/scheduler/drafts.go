package scheduler

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const DraftPurgeJobName = "booking_draft_purge"

// Purger removes expired entries and reports how many were dropped.
type Purger interface {
	Purge() int
}

// RegisterDraftPurgeJob schedules periodic removal of expired booking
// drafts.
func RegisterDraftPurgeJob(svc *Service, store Purger, cronExpr string) error {
	if store == nil {
		return fmt.Errorf("draft purge job requires a store")
	}

	jobLogger := log.With().
		Str("component", "draft_purge_job").
		Str("job_name", DraftPurgeJobName).
		Logger()

	_, err := svc.AddJob(DraftPurgeJobName, cronExpr, func() {
		removed := store.Purge()
		if removed > 0 {
			jobLogger.Info().Int("removed", removed).Msg("Purged expired booking drafts")
		}
	})
	if err != nil {
		return fmt.Errorf("add draft purge job: %w", err)
	}
	return nil
}
