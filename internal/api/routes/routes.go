// internal/api/routes/routes.go
package routes

import (
	"equipment-inventory-api-server/config"
	"equipment-inventory-api-server/internal/api/handlers"
	"equipment-inventory-api-server/internal/api/middleware"
	"equipment-inventory-api-server/internal/booking"
	"equipment-inventory-api-server/internal/groups"
	"equipment-inventory-api-server/internal/history"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/s3"
	"equipment-inventory-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the services and handlers onto the HTTP surface.
func SetupRouter(
	store inventory.Store,
	recorder *history.Recorder,
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	bookingService := booking.NewService(store, recorder)
	groupService := groups.NewService(store, recorder)

	assetHandler := &handlers.AssetHandler{Store: store, Groups: groupService}
	bookingHandler := &handlers.BookingHandler{Store: store, Bookings: bookingService, Uploader: s3Uploader}
	kitHandler := &handlers.KitHandler{Store: store, Bookings: bookingService}
	groupHandler := &handlers.GroupHandler{Store: store, Groups: groupService}
	maintenanceHandler := &handlers.MaintenanceHandler{Store: store}
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("superadmin"))
		{
			admin.POST("/users", userHandler.CreateUser)
		}

		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("admin", "manager", "staff", "superadmin"))
		{
			businessRoutes.GET("/ws", webSocketHandler.ServeWs)

			assets := businessRoutes.Group("/assets")
			{
				assets.POST("/", assetHandler.CreateAsset)
				assets.GET("/", assetHandler.ListAssets)
				assets.GET("/:id", assetHandler.GetAsset)
				assets.PUT("/:id", assetHandler.UpdateAsset)
				assets.DELETE("/:id", assetHandler.DeleteAsset)
				assets.POST("/:id/units", assetHandler.SplitToUnits)
				assets.GET("/:id/fields/:key", assetHandler.GetEffectiveField)
				assets.GET("/:id/availability", bookingHandler.GetAssetAvailability)
				assets.GET("/:id/maintenances", maintenanceHandler.ListByAsset)
			}

			bookings := businessRoutes.Group("/bookings")
			{
				bookings.POST("/", bookingHandler.CreateBooking)
				bookings.GET("/", bookingHandler.ListBookings)
				bookings.POST("/allocate", bookingHandler.AllocateQuantity)
				bookings.GET("/:id", bookingHandler.GetBooking)
				bookings.POST("/:id/approve", bookingHandler.Approve)
				bookings.POST("/:id/checkout", bookingHandler.CheckOut)
				bookings.POST("/:id/checkin", bookingHandler.CheckIn)
				bookings.POST("/:id/cancel", bookingHandler.Cancel)
				bookings.DELETE("/:id", bookingHandler.Delete)
				bookings.POST("/:id/condition-photo", bookingHandler.UploadConditionPhoto)
			}

			kits := businessRoutes.Group("/kits")
			{
				kits.POST("/", kitHandler.CreateKit)
				kits.GET("/:id", kitHandler.GetKit)
				kits.GET("/:id/availability", kitHandler.GetKitAvailability)
			}

			groupsRoutes := businessRoutes.Group("/groups")
			{
				groupsRoutes.POST("/", groupHandler.CreateGroup)
				groupsRoutes.GET("/:id", groupHandler.GetGroup)
				groupsRoutes.POST("/:id/members", groupHandler.AddMember)
				groupsRoutes.DELETE("/:id/members/:assetID", groupHandler.RemoveMember)
				groupsRoutes.POST("/:id/bulk-update", groupHandler.BulkUpdate)
				groupsRoutes.POST("/:id/bookings", bookingHandler.CreateGroupBooking)
			}

			maintenances := businessRoutes.Group("/maintenances")
			{
				maintenances.POST("/", maintenanceHandler.OpenMaintenance)
				maintenances.POST("/:id/complete", maintenanceHandler.CompleteMaintenance)
			}
		}
	}

	return router
}
