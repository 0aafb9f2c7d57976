// Package ws implements the realtime broadcast channel: every frame
// received from any connected client is rebroadcast verbatim to all
// connected clients. No auth, no persistence, no delivery guarantees.
package ws

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	countReq   chan chan int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		countReq:   make(chan chan int),
	}
}

// ClientCount reports how many connections are currently attached.
// The count is answered by the run loop, so it is consistent with the
// membership it maintains.
func (h *Hub) ClientCount() int {
	reply := make(chan int)
	h.countReq <- reply
	return <-reply
}

// Run serializes all membership and fan-out through one goroutine, so
// the clients map needs no lock.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case reply := <-h.countReq:
			reply <- len(h.clients)
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client not draining its buffer; drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}
