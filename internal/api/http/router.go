package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Rental      service.RentalService
	Maintenance service.MaintenanceService
	Charge      service.ChargeService
	Vehicle     service.VehicleService
	Client      service.ClientService
	Employee    service.EmployeeService
	Category    service.CategoryService
	Auth        service.AuthService
	Tokens      security.TokenManager
}

// NewRouter builds the full API router. Login and health are public;
// everything else requires a valid employee token.
func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(s.Auth)
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(s.Tokens))

	rentals := NewRentalHandler(s.Rental)
	protected.HandleFunc("/rentals", rentals.Create).Methods("POST")
	protected.HandleFunc("/rentals", rentals.List).Methods("GET")
	protected.HandleFunc("/rentals/sweep", rentals.SweepLifecycle).Methods("POST")
	protected.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods("GET")
	protected.HandleFunc("/rentals/{id:[0-9]+}", rentals.Update).Methods("PUT")
	protected.HandleFunc("/rentals/{id:[0-9]+}", rentals.Delete).Methods("DELETE")
	protected.HandleFunc("/rentals/{id:[0-9]+}/checkout", rentals.Checkout).Methods("POST")
	protected.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentals.Cancel).Methods("POST")

	maintenance := NewMaintenanceHandler(s.Maintenance)
	protected.HandleFunc("/maintenance", maintenance.Create).Methods("POST")
	protected.HandleFunc("/maintenance", maintenance.List).Methods("GET")
	protected.HandleFunc("/maintenance/{id:[0-9]+}", maintenance.Get).Methods("GET")
	protected.HandleFunc("/maintenance/{id:[0-9]+}", maintenance.Update).Methods("PUT")
	protected.HandleFunc("/maintenance/{id:[0-9]+}", maintenance.Delete).Methods("DELETE")

	charges := NewChargeHandler(s.Charge)
	protected.HandleFunc("/charges", charges.Create).Methods("POST")
	protected.HandleFunc("/charges", charges.List).Methods("GET")
	protected.HandleFunc("/charges/{id:[0-9]+}", charges.Get).Methods("GET")
	protected.HandleFunc("/charges/{id:[0-9]+}", charges.Update).Methods("PUT")
	protected.HandleFunc("/charges/{id:[0-9]+}", charges.Delete).Methods("DELETE")
	protected.HandleFunc("/rentals/{id:[0-9]+}/charges", charges.ListByRental).Methods("GET")

	vehicles := NewVehicleHandler(s.Vehicle)
	protected.HandleFunc("/vehicles", vehicles.Create).Methods("POST")
	protected.HandleFunc("/vehicles", vehicles.List).Methods("GET")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Get).Methods("GET")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Update).Methods("PUT")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Delete).Methods("DELETE")
	protected.HandleFunc("/vehicles/{id:[0-9]+}/availability", rentals.CheckAvailability).Methods("GET")
	protected.HandleFunc("/vehicles/{id:[0-9]+}/maintenance", maintenance.ListByVehicle).Methods("GET")

	clients := NewClientHandler(s.Client)
	protected.HandleFunc("/clients", clients.Create).Methods("POST")
	protected.HandleFunc("/clients", clients.List).Methods("GET")
	protected.HandleFunc("/clients/{id:[0-9]+}", clients.Get).Methods("GET")
	protected.HandleFunc("/clients/{id:[0-9]+}", clients.Update).Methods("PUT")
	protected.HandleFunc("/clients/{id:[0-9]+}", clients.Delete).Methods("DELETE")
	protected.HandleFunc("/clients/{id:[0-9]+}/rentals", clients.RentalHistory).Methods("GET")

	employees := NewEmployeeHandler(s.Employee)
	protected.HandleFunc("/employees", employees.Create).Methods("POST")
	protected.HandleFunc("/employees", employees.List).Methods("GET")
	protected.HandleFunc("/employees/{id:[0-9]+}", employees.Get).Methods("GET")
	protected.HandleFunc("/employees/{id:[0-9]+}", employees.Update).Methods("PUT")
	protected.HandleFunc("/employees/{id:[0-9]+}", employees.Delete).Methods("DELETE")

	categories := NewCategoryHandler(s.Category)
	protected.HandleFunc("/categories", categories.Create).Methods("POST")
	protected.HandleFunc("/categories", categories.List).Methods("GET")
	protected.HandleFunc("/categories/{id:[0-9]+}", categories.Get).Methods("GET")
	protected.HandleFunc("/categories/{id:[0-9]+}", categories.Update).Methods("PUT")
	protected.HandleFunc("/categories/{id:[0-9]+}", categories.Delete).Methods("DELETE")

	return r
}
