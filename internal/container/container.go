package container

import (
	"alternus-gallery-io/api/configs"
	"alternus-gallery-io/api/email"
	"alternus-gallery-io/api/pkg/ai"
	"alternus-gallery-io/api/pkg/controllers"
	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
)

// ServiceContainer wires database handles, services and controllers
// together once at startup.
type ServiceContainer struct {
	Redis *redis.Client

	ArtworkService services.ArtworkService
	ArtistService  services.ArtistService
	OrderService   services.OrderService
	ChatService    services.ChatService

	EmailPool *email.EmailWorkerPool

	ArtworkController *controllers.ArtworkController
	ArtistController  *controllers.ArtistController
	CartController    *controllers.CartController
	ListController    *controllers.ListController
	OrderController   *controllers.OrderController
	ChatController    *controllers.ChatController
	AiChatController  *controllers.AiChatController
	AdminController   *controllers.AdminController
}

func NewServiceContainer() *ServiceContainer {
	client := configs.ConnectDB()
	db := configs.Database(client)
	rdb := configs.ConnectRedis()

	artworkService := services.NewArtworkService(db)
	artistService := services.NewArtistService(db)
	orderService := services.NewOrderService(db)
	chatService := services.NewChatService(db)

	emailPool := email.WorkerPoolInstance(4)
	emailPool.Start()

	assistant := ai.NewAssistant(
		util.LoadEnvOr("AI_BASE_URL", "https://api.openai.com/v1"),
		util.LoadEnvFor("AI_API_KEY"),
		util.LoadEnvOr("AI_MODEL", "gpt-4o-mini"),
	)

	return &ServiceContainer{
		Redis: rdb,

		ArtworkService: artworkService,
		ArtistService:  artistService,
		OrderService:   orderService,
		ChatService:    chatService,

		EmailPool: emailPool,

		ArtworkController: controllers.InitArtworkController(artworkService, rdb),
		ArtistController:  controllers.InitArtistController(artistService, artworkService, rdb),
		CartController:    controllers.InitCartController(artworkService, rdb),
		ListController:    controllers.InitListController(artworkService, rdb),
		OrderController:   controllers.InitOrderController(orderService, emailPool, rdb),
		ChatController:    controllers.InitChatController(chatService),
		AiChatController:  controllers.InitAiChatController(assistant),
		AdminController:   controllers.InitAdminController(db, rdb),
	}
}
