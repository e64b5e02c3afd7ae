package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("provider"))

	mux := pat.New()

	// Discovery
	mux.Get("/discover/search", standardMiddleware.ThenFunc(app.discoveryHandler.Search))
	mux.Get("/discover/more", standardMiddleware.ThenFunc(app.discoveryHandler.LoadMore))
	mux.Get("/ws/discover", http.HandlerFunc(app.DiscoverWebSocketHandler))

	// Promotions
	mux.Post("/promotion", providerMiddleware.ThenFunc(app.promotionHandler.CreatePromotion))
	mux.Get("/promotion", providerMiddleware.ThenFunc(app.promotionHandler.GetMyPromotions))
	mux.Post("/promotion/:id/boost", providerMiddleware.ThenFunc(app.promotionHandler.BoostPromotion))
	mux.Post("/promotion/:id/pause", providerMiddleware.ThenFunc(app.promotionHandler.PausePromotion))
	mux.Post("/promotion/:id/resume", providerMiddleware.ThenFunc(app.promotionHandler.ResumePromotion))
	mux.Del("/promotion/:id", providerMiddleware.ThenFunc(app.promotionHandler.DeletePromotion))
	mux.Post("/promotion/:id/view", standardMiddleware.ThenFunc(app.promotionHandler.RecordView))
	mux.Post("/promotion/:id/click", standardMiddleware.ThenFunc(app.promotionHandler.RecordClick))

	// Wallet
	mux.Get("/wallet/balance", providerMiddleware.ThenFunc(app.walletHandler.GetBalance))

	return mux
}
