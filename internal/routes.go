package internal

import (
	"net/http"

	"exportlens/internal/controllers"
	"exportlens/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/upload", http.HandlerFunc(apiController.Upload))
	routers.Get("/preview", http.HandlerFunc(apiController.Preview))
	routers.Get("/chart", http.HandlerFunc(apiController.Chart))
	routers.Get("/download/csv", http.HandlerFunc(apiController.DownloadCSV))
	routers.Get("/download/urls", http.HandlerFunc(apiController.DownloadURLs))
	routers.Delete("/session", http.HandlerFunc(apiController.ClearSession))
	return routers
}
