package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{
		reader: reader,
	}
}

// GetAuditEvents returns paginated audit events, newest first. With both
// ?entity_type= and ?entity_id= it returns that entity's history instead.
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	if entityType := c.Query("entity_type"); entityType != "" {
		entityID := parseQueryInt(c, "entity_id", 0)
		if entityID == 0 {
			respondBadRequest(c, "entity_id is required with entity_type")
			return
		}
		events, err := ac.reader.GetEventsForEntity(entityType, uint(entityID))
		if err != nil {
			respondInternalError(c, err, "load entity audit events")
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events, "total_events": len(events)})
		return
	}

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 25)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	events, total, err := ac.reader.GetEvents(limit, offset)
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}
