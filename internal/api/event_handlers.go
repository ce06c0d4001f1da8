package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crimson-sun/flyerscan/internal/calendar"
	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/model"
	"github.com/crimson-sun/flyerscan/internal/store"
)

type updateEventRequest struct {
	Title     string  `json:"title" binding:"required"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Venue     *string `json:"venue"`
	Organizer *string `json:"organizer"`
	Contact   *string `json:"contact"`
	Website   *string `json:"website"`
	Category  *string `json:"category"`
}

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListEvents(c *gin.Context) {
	events, err := s.deps.Store.ListEvents(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.deps.Log.Error("list events", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list events"})
		return
	}
	if events == nil {
		events = []model.StoredEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (s *Server) handleGetEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	event, err := s.deps.Store.GetEvent(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		s.deps.Log.Error("get event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleUpdateEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	userID := currentUserID(c)
	event, err := s.deps.Store.GetEvent(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		s.deps.Log.Error("get event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
		return
	}

	event.Title = req.Title
	event.Date = req.Date
	event.Time = req.Time
	event.Venue = req.Venue
	event.Organizer = req.Organizer
	event.Contact = req.Contact
	event.Website = req.Website
	event.Category = req.Category

	if err := s.deps.Store.UpdateEvent(c.Request.Context(), event); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		s.deps.Log.Error("update event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	err := s.deps.Store.DeleteEvent(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		s.deps.Log.Error("delete event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleEventCalendar streams the event as an .ics download.
func (s *Server) handleEventCalendar(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	event, err := s.deps.Store.GetEvent(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		s.deps.Log.Error("get event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load event"})
		return
	}

	ics, err := calendar.ICS(event)
	if err != nil {
		if errors.Is(err, calendar.ErrNoDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event date is required for calendar scheduling"})
			return
		}
		s.deps.Log.Error("render calendar", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render calendar file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=event-%d.ics", event.ID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
