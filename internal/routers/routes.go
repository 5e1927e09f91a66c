package routers

import (
	"alternus-gallery-io/api/internal/container"
	"alternus-gallery-io/api/internal/middleware"
	"alternus-gallery-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the Gin router with all storefront and back-office
// endpoints.
func InitRoute() *gin.Engine {
	serviceContainer := container.NewServiceContainer()
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.GalleryRateLimiter(serviceContainer.Redis))
	{
		api.GET("/ping", controllers.Ping)

		catalogRoutes(api, serviceContainer)
		sessionRoutes(api, serviceContainer)
		orderRoutes(api, serviceContainer)
		chatRoutes(api, serviceContainer)
		adminRoutes(api, serviceContainer)
	}

	return router
}

// catalogRoutes configures the public artwork and artist endpoints.
func catalogRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	api.GET("/artworks", sc.ArtworkController.GetArtworks())
	api.GET("/artworks/:artworkid", sc.ArtworkController.GetArtwork())
	api.GET("/artists", sc.ArtistController.GetArtists())
	api.GET("/artists/:artistid", sc.ArtistController.GetArtist())
}

// sessionRoutes configures the per-session cart, wishlist and compare
// endpoints. All of them key off the session id header.
func sessionRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	cart := api.Group("/cart")
	cart.GET("", sc.CartController.GetCart())
	cart.POST("", sc.CartController.AddCartItem())
	cart.DELETE("", sc.CartController.ClearCart())
	cart.PUT("/:artworkid", sc.CartController.UpdateCartItem())
	cart.DELETE("/:artworkid", sc.CartController.RemoveCartItem())

	wishlist := api.Group("/wishlist")
	wishlist.GET("", sc.ListController.GetWishlist())
	wishlist.POST("/:artworkid", sc.ListController.AddWishlistItem())
	wishlist.DELETE("/:artworkid", sc.ListController.RemoveWishlistItem())

	compare := api.Group("/compare")
	compare.GET("", sc.ListController.GetCompareList())
	compare.POST("/:artworkid", sc.ListController.AddCompareItem())
	compare.DELETE("/:artworkid", sc.ListController.RemoveCompareItem())
}

// orderRoutes configures checkout and customer order tracking.
func orderRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	api.POST("/checkout", sc.OrderController.Checkout())
	api.GET("/orders/:ordernumber", sc.OrderController.TrackOrder())
}

// chatRoutes configures the visitor-facing support chat and the AI
// assistant.
func chatRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	api.POST("/chat/start", sc.ChatController.StartChat())
	api.GET("/chat", sc.ChatController.GetChat())
	api.POST("/chat", sc.ChatController.PostMessage())

	api.POST("/ai-chat", sc.AiChatController.Chat())
}

// adminRoutes configures the back office behind token auth.
func adminRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	api.POST("/admin/login", sc.AdminController.Login())

	secured := api.Group("/admin").Use(middleware.AdminOnly(sc.Redis))

	secured.DELETE("/logout", sc.AdminController.Logout())

	secured.POST("/artworks", sc.ArtworkController.CreateArtwork())
	secured.PUT("/artworks/:artworkid", sc.ArtworkController.UpdateArtwork())
	secured.DELETE("/artworks/:artworkid", sc.ArtworkController.DeleteArtwork())

	secured.POST("/artists", sc.ArtistController.CreateArtist())
	secured.PUT("/artists/:artistid", sc.ArtistController.UpdateArtist())

	secured.GET("/orders", sc.OrderController.GetOrders())
	secured.GET("/orders/:orderid", sc.OrderController.GetOrder())
	secured.PATCH("/orders/:orderid", sc.OrderController.UpdateOrderStatus())

	secured.GET("/chats", sc.ChatController.ListChats())
	secured.PATCH("/chats", sc.ChatController.MarkRead())
}
