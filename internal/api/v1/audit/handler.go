package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

// ListAuditEntries returns audit entries newest-first with optional
// actor_id, entity and entity_id filters. Admin only.
func ListAuditEntries(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := services.AuditFilter{Skip: skip, Limit: limit}

	if raw, exists := c.GetQuery("actor_id"); exists {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid actor_id"))
			return
		}
		filter.ActorID = &id
	}
	if raw, exists := c.GetQuery("entity"); exists {
		filter.Entity = &raw
	}
	if raw, exists := c.GetQuery("entity_id"); exists {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid entity_id"))
			return
		}
		filter.EntityID = &id
	}

	entries, total, err := services.FindAuditEntries(filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, NewAuditEntryResponse(e))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Audit entries retrieved successfully", AuditListResponse{
		Entries: items,
		Total:   total,
	}))
}

// GetAuditEntry returns a single audit entry.
func GetAuditEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid audit entry ID"))
		return
	}

	entry, err := services.GetAuditEntry(uint(id))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Audit entry retrieved successfully", NewAuditEntryResponse(*entry)))
}
