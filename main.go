package main

import (
	"cataconta-webhook/internal/config"
	"cataconta-webhook/internal/domain/entities"
	"cataconta-webhook/internal/domain/interfaces/repository"
	Iservices "cataconta-webhook/internal/domain/interfaces/services"
	"cataconta-webhook/internal/infra/handlers"
	"cataconta-webhook/internal/infra/logger"
	"cataconta-webhook/internal/infra/provider"
	"cataconta-webhook/internal/infra/queue"
	repo "cataconta-webhook/internal/infra/repository"
	"cataconta-webhook/internal/infra/routes"
	"cataconta-webhook/internal/infra/services"
	"cataconta-webhook/internal/middleware"
	client "cataconta-webhook/internal/pkg"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = config.LoadEnv()

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger(ctx, settings.LogLevel, settings.LogJSON)

	var statusRepo repository.Repository[entities.MessageStatus]
	if settings.MongoURI != "" {
		mongoClient, err := client.MongoClient(ctx, settings.MongoURI)
		if err != nil {
			log.Fatal(fmt.Sprintf("Error connecting to MongoDB: %s", err))
		}
		defer mongoClient.Disconnect(context.Background())
		statusRepo = repo.NewMongoRepository[entities.MessageStatus](mongoClient.Database(settings.MongoDatabase))
	} else {
		log.Warn("MONGODB_URI not set, message statuses are kept in memory")
		statusRepo = repo.NewMemoryRepository[entities.MessageStatus]()
	}

	statusSvc := services.NewMessageStatusService(statusRepo, log)

	var whatsAppProvider provider.IWhatsAppProvider
	var outbox *queue.Outbox
	var outboxPort Iservices.IOutbox
	if settings.UsesProvider() {
		restClient := provider.NewTwilioRestClient(settings.TwilioAccountSID, settings.TwilioAuthToken)
		whatsAppProvider = provider.NewTwilioWhatsAppProvider(log, restClient.Api, settings.TwilioWhatsAppFrom, settings.StatusCallbackURL)
	}
	if settings.ReplyMode == config.ReplyModeAsync {
		outbox = queue.NewOutbox(log, whatsAppProvider, statusSvc, settings.OutboxWorkers, settings.OutboxSize, settings.SendTimeout, settings.SendMaxRetries)
		outboxPort = outbox
	}

	channelSvc := services.NewChannelService(log, settings.ReplyMode, settings.InlineSendTimeout(), settings.DedupTTL, whatsAppProvider, outboxPort, statusSvc)
	whatsAppHandlers := handlers.NewWhatsAppHandlers(log, channelSvc, statusSvc)
	if outbox != nil {
		whatsAppHandlers.Outbox = outbox
	}

	var webhookGuard mux.MiddlewareFunc
	if settings.TwilioValidateSignature {
		webhookGuard = middleware.TwilioSignatureMiddleware(log, settings.TwilioAuthToken, settings.PublicBaseURL)
	}

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))
	routes.NewRoutes(router, whatsAppHandlers, webhookGuard).Init()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", settings.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	outboxCtx, stopOutbox := context.WithCancel(context.Background())
	defer stopOutbox()

	if outbox != nil {
		group.Go(func() error {
			return outbox.Run(outboxCtx)
		})
	}

	group.Go(func() error {
		log.Info(fmt.Sprintf("Server is running on port %s in %s mode", settings.Port, settings.ReplyMode))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("running HTTP server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)

		// The outbox drains only after no handler can enqueue anymore.
		stopOutbox()
		if err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	log.Info("Server stopped gracefully.")
}
