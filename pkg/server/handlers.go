package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/session"
	"github.com/nikogura/portfolio-chat/pkg/topic"
	"github.com/pkg/errors"
)

// SessionResponse is returned when a session is created or read.
type SessionResponse struct {
	ID       string        `json:"id"`
	Snapshot chat.Snapshot `json:"snapshot"`
}

// MessageRequest is the body of a typed submission.
type MessageRequest struct {
	Text string `json:"text"`
}

// ExchangeResponse carries the bot reply and the state after it.
type ExchangeResponse struct {
	Reply    chat.Turn     `json:"reply"`
	Snapshot chat.Snapshot `json:"snapshot"`
}

// TopicResponse describes one answerable topic.
type TopicResponse struct {
	Topic     topic.Topic `json:"topic"`
	Label     string      `json:"label"`
	Phrase    string      `json:"phrase,omitempty"`
	Chippable bool        `json:"chippable"`
}

func (s *Server) healthCheck(c *gin.Context) {
	loaded := false
	if s.store != nil {
		loaded = s.store.Loaded()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"data_loaded": loaded,
		"sessions":    s.sessions.Len(),
	})
}

func (s *Server) listTopics(c *gin.Context) {
	topics := make([]TopicResponse, 0, len(topic.All))
	for _, t := range topic.All {
		resp := TopicResponse{
			Topic:     t,
			Label:     t.Label(),
			Chippable: t.Chippable(),
		}
		if t.Chippable() {
			resp.Phrase = t.Phrase()
		}
		topics = append(topics, resp)
	}
	respondOK(c, gin.H{"topics": topics})
}

func (s *Server) createSession(c *gin.Context) {
	sess := s.sessions.Create()
	c.JSON(http.StatusCreated, SessionResponse{
		ID:       sess.ID.String(),
		Snapshot: sess.Controller.Snapshot(),
	})
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	respondOK(c, SessionResponse{
		ID:       sess.ID.String(),
		Snapshot: sess.Controller.Snapshot(),
	})
}

func (s *Server) endSession(c *gin.Context) {
	err := s.sessions.End(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) submitMessage(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var req MessageRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", errors.Wrap(err, "invalid request body"))
		return
	}

	// An answer in progress completes even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	reply, err := sess.Controller.Submit(ctx, req.Text)
	s.respondExchange(c, sess, reply, err)
}

func (s *Server) clickChip(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	t, err := topic.Parse(c.Param("topic"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown_topic", err)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	reply, err := sess.Controller.ChipClicked(ctx, t)
	s.respondExchange(c, sess, reply, err)
}

func (s *Server) respondExchange(c *gin.Context, sess *session.Session, reply chat.Turn, err error) {
	switch {
	case err == nil:
		respondOK(c, ExchangeResponse{
			Reply:    reply,
			Snapshot: sess.Controller.Snapshot(),
		})
	case errors.Is(err, chat.ErrEmptyInput):
		c.Status(http.StatusNoContent)
	case errors.Is(err, chat.ErrBusy):
		respondError(c, http.StatusConflict, "busy", err)
	case errors.Is(err, chat.ErrUnknownTopic):
		respondError(c, http.StatusBadRequest, "unknown_topic", err)
	default:
		s.log.Error("exchange failed", "session", sess.ID.String(), "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func (s *Server) lookup(c *gin.Context) (sess *session.Session, ok bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "session_not_found", err)
		return sess, false
	}
	return sess, true
}
