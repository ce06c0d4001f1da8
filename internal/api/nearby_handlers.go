package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/nearby"
)

// handleNearby proxies a venue search to the configured discovery
// providers.
func (s *Server) handleNearby(c *gin.Context) {
	venue := strings.TrimSpace(c.Query("venue"))
	if venue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "venue query parameter is required"})
		return
	}
	category := c.Query("category")
	showAll, _ := strconv.ParseBool(c.DefaultQuery("show_all", "false"))

	events, err := s.deps.Nearby.Search(c.Request.Context(), venue, category, showAll)
	if err != nil {
		s.deps.Log.Error("nearby search", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "nearby search failed"})
		return
	}
	if events == nil {
		events = []nearby.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
