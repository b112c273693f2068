package ws

import (
	"log"
	"net/http"
	"sync"

	"backend/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedHub pushes a summary of every newly submitted report to connected
// admin dashboards.
type FeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan store.ReportSummary
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewFeedHub(st *store.ReportStore) *FeedHub {
	h := &FeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan store.ReportSummary, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
	st.OnChange(func(ev store.Event) {
		if ev.Type != store.EventAdded {
			return
		}
		select {
		case h.broadcast <- store.Summarize(ev.Report):
		default:
			log.Println("ws: feed backlog full, dropping event")
		}
	})
	return h
}

func (h *FeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case summary := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(summary); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /admin/feed and keeps the connection
// registered until the client goes away.
func (h *FeedHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
