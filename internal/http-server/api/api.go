package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"MedPet/bot/whatsapp"
	"MedPet/internal/config"
	"MedPet/internal/http-server/handlers/appointments"
	"MedPet/internal/http-server/handlers/chats"
	"MedPet/internal/http-server/handlers/errors"
	whatsapphandler "MedPet/internal/http-server/handlers/whatsapp"
	"MedPet/internal/http-server/middleware/authenticate"
	"MedPet/internal/lib/sl"
	"MedPet/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Archive is the read side of the operator API.
type Archive interface {
	appointments.Core
	chats.Core
}

// New builds the router and serves it. The webhook endpoints stay open to
// the messaging platform; everything under /api/v1 requires the operator
// key.
func New(conf *config.Config, log *slog.Logger, bot *whatsapp.WhatsAppBot, hub *ws.Hub, archive Archive) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/webhook", whatsapphandler.WebhookVerify(log, bot))
	router.Post("/webhook", whatsapphandler.WebhookHandler(log, bot))

	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, conf.Listen.ApiKey, log, w, r)
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.Timeout(5 * time.Second))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Use(authenticate.New(log, conf.Listen.ApiKey))

		v1.Get("/appointments", appointments.List(log, archive))
		v1.Get("/chats/{conversationID}/messages", chats.Messages(log, archive))
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
