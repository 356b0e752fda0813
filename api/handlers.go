package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// processRequest is the body of POST /api/process. Input may be empty:
// the router answers empty input with recent notes and corpus stats.
type processRequest struct {
	Input string `json:"input"`
}

// validateRequest is the body of POST /api/agents/:type/validate.
type validateRequest struct {
	Action string         `json:"action" binding:"required"`
	Input  map[string]any `json:"input"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lorekeep",
	})
}

// process routes free-form input through the dispatcher and returns the
// full result envelope, routing metadata included.
func (s *Server) process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := s.dispatcher.Process(c.Request.Context(), req.Input)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

func (s *Server) agentsInfo(c *gin.Context) {
	types := s.dispatcher.AgentTypes()

	info := make(map[string][]string, len(types))
	for _, agentType := range types {
		handler := s.dispatcher.Handler(agentType)
		if handler == nil {
			continue
		}
		info[agentType] = handler.Capabilities()
	}

	c.JSON(http.StatusOK, gin.H{"agents": info})
}

func (s *Server) agentCapabilities(c *gin.Context) {
	agentType := strings.TrimSpace(c.Param("type"))
	handler := s.dispatcher.Handler(agentType)
	if handler == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown agent type: " + agentType})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agent_type":   agentType,
		"capabilities": handler.Capabilities(),
	})
}

func (s *Server) agentValidate(c *gin.Context) {
	agentType := strings.TrimSpace(c.Param("type"))
	handler := s.dispatcher.Handler(agentType)
	if handler == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown agent type: " + agentType})
		return
	}

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Input == nil {
		req.Input = map[string]any{}
	}

	c.JSON(http.StatusOK, gin.H{
		"agent_type": agentType,
		"action":     req.Action,
		"valid":      handler.Validate(req.Action, req.Input),
	})
}
