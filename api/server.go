// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/lorekeep/lorekeep/agents"
)

// Server exposes the assistant over HTTP.
type Server struct {
	dispatcher *agents.Dispatcher
	engine     *gin.Engine
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With("component", "api-server")
	}
}

// NewServer creates an HTTP server around a dispatcher.
func NewServer(dispatcher *agents.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: dispatcher,
		logger:     slog.Default().With("component", "api-server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.logger))
	s.engine = engine
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")
	{
		api.POST("/process", s.process)
		api.GET("/agents/info", s.agentsInfo)
		api.GET("/agents/:type/capabilities", s.agentCapabilities)
		api.POST("/agents/:type/validate", s.agentValidate)
	}
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run starts the server on the given address and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting HTTP server", "addr", addr)
	return s.engine.Run(addr)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
