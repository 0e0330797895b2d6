package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"rentx/internal/api"
	"rentx/internal/auth"
	"rentx/internal/cache"
	"rentx/internal/repository"
	"rentx/internal/service"
	"rentx/internal/validation"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	var vehicleCache service.VehicleCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		vehicleCache = cache.NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), 5*time.Minute)
	}

	bookingRepo := repository.NewBookingRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, sender)
	vehicleSvc := service.NewVehicleService(vehicleRepo, vehicleCache)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
	authSvc := service.NewAuthService(userRepo, jwtSecret)
	messageSvc := service.NewMessageService(messageRepo)

	v := validation.New()
	bookingHandler := api.NewBookingHandler(bookingSvc, v)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc, maintenanceSvc, v)
	authHandler := api.NewAuthHandler(authSvc, v)
	messageHandler := api.NewMessageHandler(messageSvc, v)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/vehicles", vehicleHandler.List).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Get).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}/maintenance", vehicleHandler.ListMaintenance).Methods("GET")
	r.HandleFunc("/api/bookings/busy-dates", bookingHandler.BusyDates).Methods("GET")
	r.HandleFunc("/api/bookings/check", bookingHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.Create).Methods("POST")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/messages", messageHandler.Create).Methods("POST")

	// Authenticated user endpoints
	user := r.PathPrefix("/api").Subrouter()
	user.Use(auth.Middleware(jwtSecret))
	user.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	user.HandleFunc("/bookings/my-bookings", bookingHandler.MyBookings).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(auth.Middleware(jwtSecret), auth.RequireRole(service.RoleAdmin))
	admin.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", bookingHandler.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", bookingHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/vehicles/{id}/maintenance", vehicleHandler.CreateMaintenance).Methods("POST")
	admin.HandleFunc("/maintenance/{id}", vehicleHandler.DeleteMaintenance).Methods("DELETE")
	admin.HandleFunc("/messages", messageHandler.List).Methods("GET")
	admin.HandleFunc("/messages/{id}/status", messageHandler.ToggleStatus).Methods("PUT")
	admin.HandleFunc("/messages/{id}", messageHandler.Delete).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
