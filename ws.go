package main

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// panelRequest is one filter change sent by a live client.
type panelRequest struct {
	Panel       string   `json:"panel"`
	Season      string   `json:"season"`
	League      string   `json:"league"`
	Teams       []string `json:"teams"`
	TeamA       string   `json:"team_a"`
	TeamB       string   `json:"team_b"`
	Orientation string   `json:"orientation"`
}

type panelReply struct {
	Panel string `json:"panel"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) answer(req panelRequest) panelReply {
	reply := panelReply{Panel: req.Panel}
	q, err := s.newQuery(req.Season, req.League, req.Orientation, req.Teams, req.TeamA, req.TeamB)
	if err == nil {
		reply.Data, err = s.panelData(req.Panel, q)
	}
	if err != nil {
		reply.Data = nil
		reply.Error = err.Error()
	}
	return reply
}

// wsHandler answers panel requests over one connection until the client
// goes away. Each panel recomputes independently.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req panelRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if err := conn.WriteJSON(s.answer(req)); err != nil {
			s.log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}
