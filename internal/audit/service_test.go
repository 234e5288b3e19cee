package audit

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/bookalchemy/internal/database/audit"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "author_create",
		Description: "Created author: Tolkien",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "author_create", saved.Action)
}

func TestService_LogCreate(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogCreate("book", 5, "The Hobbit", map[string]any{"has_summary": true})
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "book_create").First(&event).Error)
	assert.Equal(t, entities.AuditEventCreate, event.EventType)
	assert.Equal(t, "Created book: The Hobbit", event.Description)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(5), *event.EntityID)
	assert.JSONEq(t, `{"has_summary": true}`, event.Metadata)
}

func TestService_LogDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogDelete("author", 3, "Harper Lee", nil)
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "author_delete").First(&event).Error)
	assert.Equal(t, entities.AuditEventDelete, event.EventType)
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	assert.Empty(t, event.Metadata)
}

func TestService_LogFailure(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogFailure(entities.AuditEventCreate, "book", "Rejected book: Emma", errors.New("duplicate isbn"))
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("status = ?", entities.AuditStatusFailed).First(&event).Error)
	assert.Equal(t, "book_create", event.Action)
	assert.Equal(t, "duplicate isbn", event.ErrorMsg)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-72 * time.Hour)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "recent"}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "recent", events[0].Action)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	cut := truncate(strings.Repeat("é", 20), 10)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, 10, utf8.RuneCountInString(cut))
	assert.Equal(t, "ééééééé...", cut)
}
