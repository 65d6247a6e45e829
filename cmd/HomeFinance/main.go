package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	database "github.com/pwolarz/HomeFinance/db"
	"github.com/pwolarz/HomeFinance/internal/auth"
	"github.com/pwolarz/HomeFinance/internal/finance/application"
	"github.com/pwolarz/HomeFinance/internal/finance/infrastructure"
	"github.com/pwolarz/HomeFinance/internal/finance/interfaces"
	"github.com/pwolarz/HomeFinance/internal/logger"
	"github.com/pwolarz/HomeFinance/internal/settings/property"
)

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	jwtManager         auth.JWTManagerInterface
	categoryHandler    *interfaces.CategoryHandler
	expenseHandler     *interfaces.ExpenseHandler
	transactionHandler *interfaces.TransactionHandler
	noteHandler        *interfaces.NoteHandler
	propertyHandler    *property.Handler
}

func NewServer(
	jwtManager auth.JWTManagerInterface,
	categoryHandler *interfaces.CategoryHandler,
	expenseHandler *interfaces.ExpenseHandler,
	transactionHandler *interfaces.TransactionHandler,
	noteHandler *interfaces.NoteHandler,
	propertyHandler *property.Handler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		jwtManager:         jwtManager,
		categoryHandler:    categoryHandler,
		expenseHandler:     expenseHandler,
		transactionHandler: transactionHandler,
		noteHandler:        noteHandler,
		propertyHandler:    propertyHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	authed := auth.JWTAccessTokenMiddleware(s.jwtManager)

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	// CATEGORIES API
	protectedRoutes.Handle("POST /api/protected/finance/categories",
		authed(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("GET /api/protected/finance/categories",
		authed(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("GET /api/protected/finance/categories/{id}",
		authed(http.HandlerFunc(s.categoryHandler.GetCategory)))
	protectedRoutes.Handle("PUT /api/protected/finance/categories/{id}",
		authed(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/finance/categories/{id}",
		authed(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// EXPENSES API
	protectedRoutes.Handle("POST /api/protected/finance/expenses",
		authed(http.HandlerFunc(s.expenseHandler.CreateExpense)))
	protectedRoutes.Handle("GET /api/protected/finance/expenses",
		authed(http.HandlerFunc(s.expenseHandler.GetExpenses)))
	protectedRoutes.Handle("GET /api/protected/finance/expenses/{id}",
		authed(http.HandlerFunc(s.expenseHandler.GetExpense)))
	protectedRoutes.Handle("PUT /api/protected/finance/expenses/{id}",
		authed(http.HandlerFunc(s.expenseHandler.UpdateExpense)))
	protectedRoutes.Handle("DELETE /api/protected/finance/expenses/{id}",
		authed(http.HandlerFunc(s.expenseHandler.DeleteExpense)))
	protectedRoutes.Handle("POST /api/protected/finance/expenses/{id}/generate-transaction",
		authed(http.HandlerFunc(s.expenseHandler.GenerateTransaction)))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/finance/transactions",
		authed(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/finance/transactions",
		authed(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	protectedRoutes.Handle("GET /api/protected/finance/transactions/{id}",
		authed(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	protectedRoutes.Handle("PUT /api/protected/finance/transactions/{id}",
		authed(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/finance/transactions/{id}",
		authed(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// NOTES API
	protectedRoutes.Handle("PUT /api/protected/finance/notes",
		authed(http.HandlerFunc(s.noteHandler.UpsertNote)))
	protectedRoutes.Handle("GET /api/protected/finance/notes",
		authed(http.HandlerFunc(s.noteHandler.GetNotes)))
	protectedRoutes.Handle("DELETE /api/protected/finance/notes/{id}",
		authed(http.HandlerFunc(s.noteHandler.DeleteNote)))

	// PROPERTIES API
	protectedRoutes.Handle("POST /api/protected/settings/properties",
		authed(http.HandlerFunc(s.propertyHandler.CreateProperty)))
	protectedRoutes.Handle("GET /api/protected/settings/properties",
		authed(http.HandlerFunc(s.propertyHandler.GetProperties)))
	protectedRoutes.Handle("GET /api/protected/settings/properties/default",
		authed(http.HandlerFunc(s.propertyHandler.GetDefaultProperty)))
	protectedRoutes.Handle("GET /api/protected/settings/properties/{id}",
		authed(http.HandlerFunc(s.propertyHandler.GetProperty)))
	protectedRoutes.Handle("PUT /api/protected/settings/properties/{id}",
		authed(http.HandlerFunc(s.propertyHandler.UpdateProperty)))
	protectedRoutes.Handle("DELETE /api/protected/settings/properties/{id}",
		authed(http.HandlerFunc(s.propertyHandler.DeleteProperty)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	logger.Init()

	if err := checkConfiguration(); err != nil {
		log.Fatal().Err(err).Msg("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize database")
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatal().Err(err).Msg("Could not run migrations")
	}

	jwtManager := auth.NewJWTManager()

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo, transactionRepo, categoryService)
	expenseHandler := interfaces.NewExpenseHandler(expenseService, respondJSON, respondError)

	transactionService := application.NewTransactionService(transactionRepo, categoryService, expenseService)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	noteRepo := infrastructure.NewNoteRepository(dbService.DB)
	noteService := application.NewNoteService(noteRepo)
	noteHandler := interfaces.NewNoteHandler(noteService, respondJSON, respondError)

	propertyRepo := property.NewRepository(dbService.DB)
	propertyService := property.NewService(propertyRepo)
	propertyHandler := property.NewHandler(propertyService, respondJSON, respondError)

	server := NewServer(jwtManager, categoryHandler, expenseHandler, transactionHandler, noteHandler, propertyHandler)
	server.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Server starting")
	if err := http.ListenAndServe(":"+port, logger.Recovery(logger.RequestLogger(server.router))); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
