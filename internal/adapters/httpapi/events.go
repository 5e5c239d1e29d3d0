package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type eventDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Location    string `json:"location"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
	Tags        string `json:"tags"`
	Language    string `json:"language"`
	AIProcessed bool   `json:"ai_processed"`
}

func toDTO(e entities.Event) eventDTO {
	return eventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.DateISO(),
		EventTime:   e.EventTime,
		Location:    e.Location,
		Source:      e.Source,
		SourceURL:   e.SourceURL,
		Tags:        e.Tags,
		Language:    e.Language,
		AIProcessed: e.AIProcessed,
	}
}

// ListEvents: GET /v1/events?lang=en&limit=10
func (h *Handler) ListEvents(c *gin.Context) {
	lang, err := domain.ParseLanguage(c.DefaultQuery("lang", h.fallback))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": domain.Code(err)})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	ctx := c.Request.Context()
	events, err := h.events.ListEvents(ctx, lang, limit)
	if err != nil {
		h.logger.Error("❌ list events", "language", lang, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list events failed"})
		return
	}
	total, err := h.events.CountEvents(ctx, lang)
	if err != nil {
		total = int64(len(events))
	}

	data := make([]eventDTO, 0, len(events))
	for _, e := range events {
		data = append(data, toDTO(e))
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{
			"language": lang,
			"count":    len(data),
			"total":    total,
		},
		"data": data,
	})
}

// Parse: POST /v1/parse
func (h *Handler) Parse(c *gin.Context) {
	report, err := h.events.ParseAll(c.Request.Context())
	if errors.Is(err, domain.ErrParseInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": domain.Code(err)})
		return
	}
	if err != nil {
		h.logger.Error("❌ manual parse", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "parse failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":        report.RunID,
		"groups":        report.Groups,
		"failed_groups": report.FailedGroups,
		"posts":         report.Posts,
		"extracted":     report.Extracted,
		"saved":         report.Saved,
		"duration_ms":   report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	})
}
