package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type askRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "civic-qa",
		"message": "Ask me about your elected officials. POST /ask with {\"query\": \"who is the mayor\"}.",
	})
}

func (s *Server) handleAsk(c *gin.Context) {
	start := time.Now()

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	answer, err := s.engine.Answer(c.Request.Context(), req.Query, sessionID)
	if err != nil {
		s.logger.WithError(err).Error("ask failed", map[string]interface{}{"sessionId": sessionID})
		if s.obs != nil {
			s.obs.RecordQuestionProcessed(c.Request.Context(), "error")
			s.obs.RecordQuestionDuration(c.Request.Context(), time.Since(start), "error")
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong looking that up. Please try again.",
		})
		return
	}

	if s.obs != nil {
		s.obs.RecordQuestionProcessed(c.Request.Context(), "ok")
		s.obs.RecordQuestionDuration(c.Request.Context(), time.Since(start), "ok")
	}
	c.JSON(http.StatusOK, askResponse{Response: answer, SessionID: sessionID})
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.db != nil {
		if err := s.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
