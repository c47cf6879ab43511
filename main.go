package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/routes"
	"hotel-pms/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established and migrations applied")

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	rateService := services.NewRateService(db)
	folioService := services.NewFolioService(db)
	reservationService := services.NewReservationService(db, availabilityService, rateService, folioService)
	paymentService := services.NewPaymentService(db, folioService)
	channelService := services.NewChannelService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService)
	rateController := controllers.NewRateController(rateService)
	folioController := controllers.NewFolioController(folioService)
	paymentController := controllers.NewPaymentController(paymentService)
	channelController := controllers.NewChannelController(channelService)
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)

	router := routes.SetupRouter(
		reservationController,
		rateController,
		folioController,
		paymentController,
		channelController,
		roomController,
		guestController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
