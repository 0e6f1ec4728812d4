package main

import (
	"context"
	"fmt"
	"os"

	"github.com/claritybiz/irp-platform/internal/auth"
	"github.com/claritybiz/irp-platform/internal/config"
	"github.com/claritybiz/irp-platform/internal/excel"
	"github.com/claritybiz/irp-platform/internal/export"
	httphandler "github.com/claritybiz/irp-platform/internal/http"
	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/logger"
	"github.com/claritybiz/irp-platform/internal/pdf"
	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	stores := repository.NewStores()
	if cfg.SeedDemo {
		if err := stores.Seed(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	requestService := service.NewRequestService(stores.Requests, cfg.Platform.ServiceCategories)
	bidService := service.NewBidService(
		stores.Bids,
		stores.Requests,
		stores.Payments,
		pdf.NewGenerator(),
		cfg.Platform.PlatformFeePercent,
		cfg.Platform.GSTPercent,
	)
	chatService := service.NewChatService(stores.Chat)
	invitationService := service.NewInvitationService(stores.Professionals, stores.Requests)
	workspaceService := service.NewWorkspaceService(stores.Workspace)
	profileService := service.NewProfileService(stores.Profiles)
	paymentService := service.NewPaymentService(stores.Payments, export.NewCSVEncoder(), excel.NewGenerator())
	draftService := service.NewDraftService()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(
		requestService,
		bidService,
		chatService,
		invitationService,
		workspaceService,
		profileService,
		paymentService,
		draftService,
		log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting irp platform")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
