package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"

	"shapes/scene"
	"shapes/utils"
	"shapes/wire"
)

type subscriber struct {
	Messages chan *wire.ServerEvent
	ClientID string
	c        *websocket.Conn
}

type event struct {
	*wire.ClientEvent
	*subscriber
}

type Server struct {
	subscribers    map[*subscriber]struct{}
	mu             sync.RWMutex
	serveMux       http.ServeMux
	events         chan *event
	scene          *scene.Scene
	originPatterns []string
}

func interval(millis, fallback int) time.Duration {
	if millis <= 0 {
		millis = fallback
	}
	return time.Duration(millis) * time.Millisecond
}

// NewServer takes ownership of sc. Events are applied on a single goroutine that runs until ctx is done.
func NewServer(ctx context.Context, cfg *utils.Config, sc *scene.Scene) *Server {
	s := &Server{
		subscribers:    make(map[*subscriber]struct{}),
		events:         make(chan *event, 1024),
		scene:          sc,
		originPatterns: cfg.Server.OriginPatterns,
	}

	go func() {
		sync := time.NewTicker(interval(cfg.Server.SyncMillis, 250))
		tick := time.NewTicker(interval(cfg.Server.TickMillis, 17))
		defer sync.Stop()
		defer tick.Stop()
		for {
			select {
			case <-sync.C:
				// Let clients notice scene changes they missed.
				s.publish(&wire.ServerEvent{
					Op:      wire.OpSync,
					Version: s.scene.Version(),
				})

			case <-tick.C:
				s.onTick()

			case <-ctx.Done():
				return
			}
		}
	}()

	s.serveMux.HandleFunc("/", s.onConnection)
	s.serveMux.HandleFunc("/debug/pprof/", pprof.Index)
	s.serveMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	s.serveMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.serveMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.serveMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return s
}

func (s *Server) onTick() {
	var broadcasts []*wire.ServerEvent

	for len(s.events) > 0 {
		e := <-s.events
		reply, broadcast := Handle(s.scene, e.ClientEvent)
		if reply.Error != "" {
			log.WithFields(log.Fields{
				"client": e.ClientEvent.ID,
				"op":     e.Op,
			}).Warn(reply.Error)
		}
		s.send(e.subscriber, reply)
		if broadcast != nil {
			broadcasts = append(broadcasts, broadcast)
		}
	}

	for _, broadcast := range broadcasts {
		s.publish(broadcast)
	}
}

func (s *Server) addSubscriber(sub *subscriber) {
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeSubscriber(sub *subscriber) {
	s.mu.Lock()
	delete(s.subscribers, sub)
	s.mu.Unlock()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.serveMux.ServeHTTP(w, r)
}

func (s *Server) onConnection(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "")

	err = s.handleConnection(r.Context(), c)
	if errors.Is(err, context.Canceled) || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		c.Close(websocket.StatusNormalClosure, "")
		return
	}
	if err != nil {
		log.Println(err)
	}
}

func (s *Server) handleConnection(ctx context.Context, c *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := &subscriber{
		Messages: make(chan *wire.ServerEvent, 1024),
		c:        c,
	}
	s.addSubscriber(sub)
	defer s.removeSubscriber(sub)

	readErr := make(chan error, 1)
	go func() {
		defer cancel()
		readErr <- s.readEvents(ctx, sub)
	}()

	for {
		select {
		case msg := <-sub.Messages:
			if err := c.Write(ctx, websocket.MessageBinary, msg.Marshal()); err != nil {
				return err
			}
		case <-ctx.Done():
			select {
			case err := <-readErr:
				return err
			default:
				return ctx.Err()
			}
		}
	}
}

func (s *Server) readEvents(ctx context.Context, sub *subscriber) error {
	for {
		messageType, b, err := sub.c.Read(ctx)
		if err != nil {
			if sub.ClientID != "" {
				log.WithField("client", sub.ClientID).Info("disconnected")
			}
			return err
		}
		if messageType != websocket.MessageBinary {
			continue
		}

		var clientEvent wire.ClientEvent
		if err := clientEvent.Unmarshal(b); err != nil {
			log.WithField("client", sub.ClientID).Warn(err)
			s.send(sub, &wire.ServerEvent{Error: err.Error()})
			continue
		}
		if sub.ClientID == "" && clientEvent.ID != "" {
			sub.ClientID = clientEvent.ID
			log.WithField("client", sub.ClientID).Info("connected")
		}
		select {
		case s.events <- &event{&clientEvent, sub}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// send queues msg for sub, dropping a subscriber that stopped reading.
func (s *Server) send(sub *subscriber, msg *wire.ServerEvent) {
	select {
	case sub.Messages <- msg:
	default:
		go sub.c.Close(websocket.StatusPolicyViolation, "write would block")
	}
}

func (s *Server) publish(event *wire.ServerEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for sub := range s.subscribers {
		s.send(sub, event)
	}
}

// Run listens on the configured address and serves until ctx is cancelled or the process is interrupted.
func Run(ctx context.Context, cfg *utils.Config, sc *scene.Scene) error {
	l, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return err
	}
	log.Printf("Listening on http://%v", l.Addr())
	return Serve(ctx, l, cfg, sc)
}

func Serve(ctx context.Context, l net.Listener, cfg *utils.Config, sc *scene.Scene) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	s := &http.Server{
		Handler:      NewServer(ctx, cfg, sc),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		if err := s.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("terminating")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
