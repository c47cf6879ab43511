package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the engine's public
// HTTP surface.
func SetupRouter(
	rc *controllers.ReservationController,
	ratec *controllers.RateController,
	fc *controllers.FolioController,
	pc *controllers.PaymentController,
	cc *controllers.ChannelController,
	roomc *controllers.RoomController,
	gc *controllers.GuestController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/availability", rc.CheckAvailability)

		reservations := api.Group("/reservations")
		{
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/confirmation/:confirmation", rc.GetByConfirmation)
			reservations.GET("/:id", rc.GetReservation)
			reservations.POST("/:id/check-in", rc.CheckIn)
			reservations.POST("/:id/check-out", rc.CheckOut)
			reservations.POST("/:id/cancel", rc.Cancel)
			reservations.POST("/:id/no-show", rc.NoShow)

			reservations.GET("/:id/charges", fc.GetCharges)
			reservations.POST("/:id/charges", fc.AddCharge)
			reservations.POST("/:id/charges/quantity", fc.AddChargeWithQuantity)
			reservations.GET("/:id/charges/total", fc.GetTotal)
			reservations.GET("/:id/charges/refundable", fc.GetRefundable)

			reservations.GET("/:id/payments", pc.GetPayments)
			reservations.POST("/:id/payments", pc.ProcessPayment)
			reservations.GET("/:id/balance", pc.GetOutstandingBalance)

			reservations.GET("/:id/commission", cc.GetReservationPerformance)
		}

		charges := api.Group("/charges")
		{
			charges.PATCH("/:id", fc.CorrectCharge)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/:id/refund", pc.ProcessRefund)
		}

		rates := api.Group("/rates")
		{
			rates.POST("", ratec.SetRate)
			rates.POST("/bulk", ratec.BulkSetRates)
			rates.POST("/block", ratec.BlockSales)
			rates.POST("/unblock", ratec.UnblockSales)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomc.GetRooms)
			rooms.POST("", roomc.CreateRoom)
			rooms.GET("/number/:number", roomc.GetRoomByNumber)
			rooms.GET("/:id/rates", ratec.GetRatesForRoom)
			rooms.PATCH("/:id/status", roomc.UpdateStatus)
			rooms.DELETE("/:id", roomc.Deactivate)
		}

		channels := api.Group("/channels")
		{
			channels.GET("", cc.GetChannels)
			channels.POST("", cc.CreateChannel)
			channels.GET("/code/:code", cc.GetChannelByCode)
			channels.GET("/:id/rates", ratec.GetRatesForChannel)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.FindByEmail)
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuest)
		}
	}

	return r
}
