package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/eventhive/eventhive-go/config"
	controllers "github.com/eventhive/eventhive-go/controllers"
	middleware "github.com/eventhive/eventhive-go/middleware"
	models "github.com/eventhive/eventhive-go/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	api := r.Group(cfg.APIPrefix)

	authRequired := middleware.AuthMiddleware(cfg)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup(cfg))
		auth.POST("/login", controllers.Login(cfg))
		auth.POST("/forgotpassword", controllers.ForgotPassword(cfg))
		auth.POST("/resetpassword", controllers.ResetPassword(cfg))

		auth.POST("/logout", authRequired, controllers.Logout(cfg))
		auth.PATCH("/updateprofile", authRequired, controllers.UpdateProfile(cfg))
		auth.PATCH("/updatepassword", authRequired, controllers.UpdatePassword(cfg))
		auth.DELETE("/deleteaccount", authRequired, controllers.DeleteAccount(cfg))
	}

	role := api.Group("/role")
	role.Use(authRequired)
	{
		role.POST("/ownerroleswitch", controllers.OwnerRoleSwitch(cfg))
		role.POST("/userroleswitch", controllers.UserRoleSwitch(cfg))
	}

	// Owner-authored event management
	event := api.Group("/event")
	event.Use(authRequired, middleware.RequireRoles(models.RoleOwner))
	{
		event.POST("/addevent", controllers.AddEvent(cfg))
		event.PATCH("/update/:id", controllers.UpdateEvent(cfg))
		event.DELETE("/deleteevent/:id", controllers.DeleteEvent(cfg))
		event.GET("/allownerevents", controllers.ListOwnerEvents(cfg))
		event.GET("/findoneownerevents/:id", controllers.GetOwnerEvent(cfg))
		event.GET("/filterevents", controllers.FilterOwnerEvents(cfg))
	}

	// User-facing discovery and engagement
	userEvent := api.Group("/userevent")
	userEvent.Use(authRequired, middleware.RequireRoles(models.RoleUser))
	{
		userEvent.GET("/getallevents", controllers.AllEvents(cfg))
		userEvent.GET("/getparticularevent/:id", controllers.ParticularEvent(cfg))
		userEvent.GET("/filterevents", controllers.FilterEvents(cfg))

		userEvent.POST("/pinevent/:id", controllers.PinEvent(cfg))
		userEvent.POST("/unpinevent/:id", controllers.UnpinEvent(cfg))
		userEvent.GET("/allpinevent", controllers.AllPinnedEvents(cfg))
		userEvent.POST("/likeevent/:id", controllers.LikeEvent(cfg))

		userEvent.POST("/addcomment/:id", controllers.AddComment(cfg))
		userEvent.GET("/eventcomment/:id", controllers.EventComments(cfg))
		userEvent.PATCH("/editcomment/:id", controllers.EditComment(cfg))
		userEvent.DELETE("/deletecomment/:id", controllers.DeleteComment(cfg))
	}
}
