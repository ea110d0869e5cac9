package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/services"
)

const topicsKey = "topics"

// WSHandler pushes session and data events to the open dashboard pages, which
// re-render instead of reloading.
type WSHandler struct {
	M   *melody.Melody
	log *zap.Logger
}

func NewWSHandler(log *zap.Logger) *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-Alive Configuration (needed behind cloud load balancers)
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		topics, _ := s.Get(topicsKey)
		log.Debug("Client subscribed", zap.Any("topics", topics))
	})

	m.HandleDisconnect(func(s *melody.Session) {
		log.Debug("Client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Warn("WebSocket error", zap.Error(err))
	})

	return &WSHandler{M: m, log: log}
}

// HandleWS upgrades GET /ws/events?topics=session,data. No topics means all.
func (h *WSHandler) HandleWS(c *gin.Context) {
	topics := map[string]bool{}
	for _, t := range queryList(c, "topics") {
		topics[strings.ToLower(t)] = true
	}

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{topicsKey: topics})
	if err != nil {
		h.log.Warn("Failed to upgrade websocket", zap.Error(err))
	}
}

// Publish sends evt to every socket subscribed to its topic.
func (h *WSHandler) Publish(evt services.Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("Failed to encode event", zap.Error(err))
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		v, ok := s.Get(topicsKey)
		if !ok {
			return true
		}
		topics, _ := v.(map[string]bool)
		return len(topics) == 0 || topics[evt.Topic]
	})
	if err != nil {
		h.log.Warn("Error broadcasting event", zap.String("type", evt.Type), zap.Error(err))
	}
}

// PublishSession forwards session store changes on the session topic.
func (h *WSHandler) PublishSession(evt services.SessionEvent) {
	h.Publish(services.Event{Type: "session_" + string(evt.Type), Topic: services.TopicSession, At: evt.At})
}
