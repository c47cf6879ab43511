package controllers

import (
	"net/http"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Svc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{Svc: svc}
}

type CreateGuestPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

func (ctl *GuestController) CreateGuest(c *gin.Context) {
	var payload CreateGuestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	guest, err := ctl.Svc.CreateGuest(services.CreateGuestInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

// FindByEmail handles GET /guests?email=...
func (ctl *GuestController) FindByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email query parameter is required")
		return
	}
	guest, err := ctl.Svc.FindGuestByEmail(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctl *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	guest, err := ctl.Svc.GetGuest(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
