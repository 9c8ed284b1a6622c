package api

import (
	"net/http"

	_ "github.com/AlexZinkM/aptos-gifts/docs"
	"github.com/AlexZinkM/aptos-gifts/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(aptosHandler *handler.AptosHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Aptos endpoints
	mux.HandleFunc("/aptos/balance", aptosHandler.GetBalance)
	mux.HandleFunc("/aptos/faucet", aptosHandler.Faucet)
	mux.HandleFunc("/aptos/gifts", aptosHandler.Gifts)
	mux.HandleFunc("/aptos/deployment", aptosHandler.Deployment)

	return mux
}
