package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookalchemy/internal/database/audit"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// Service provides high-level audit logging for catalog mutations.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
// The timestamp is taken at call time so history keeps the mutation order.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("[audit] Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until all pending asynchronous events are written.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogCreate records the creation of a book or author.
func (s *Service) LogCreate(entityType string, entityID uint, entityName string, metadata map[string]any) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: "Created " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogDelete records a deletion. metadata carries cascade details such as
// removed book counts or an orphaned author that went with the book.
func (s *Service) LogDelete(entityType string, entityID uint, entityName string, metadata map[string]any) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogFailure records a rejected mutation (validation, duplicate ISBN, ...).
func (s *Service) LogFailure(eventType entities.AuditEventType, entityType, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(description, 500),
		EntityType:  entityType,
		Status:      entities.AuditStatusFailed,
	}
	if err != nil {
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsForEntity retrieves the history of one entity.
func (s *Service) GetEventsForEntity(entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// truncate shortens a string to maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
