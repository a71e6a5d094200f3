package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-be/internal/entities"
	"booking-be/internal/models"
	"booking-be/internal/service"
)

type HospitalController struct {
	hospitalService service.HospitalService
}

func NewHospitalController(hospitalService service.HospitalService) *HospitalController {
	return &HospitalController{
		hospitalService: hospitalService,
	}
}

// List handles GET /hospitals
func (hc *HospitalController) List(c *gin.Context) {
	hospitals, err := hc.hospitalService.ListHospitals(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, "All Hospitals List", hospitals)
}

// ListServices handles GET /hospitals/:id/services. An unknown hospital,
// including an id that cannot name one, has no services.
func (hc *HospitalController) ListServices(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respond(c, http.StatusOK, "Hospital Services List", []entities.Service{})
		return
	}

	services, err := hc.hospitalService.ListServices(c.Request.Context(), uint(id))
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, "Hospital Services List", services)
}

// Create handles POST /hospitals
func (hc *HospitalController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.HospitalRequest
	if !bindJSON(c, &req, "Hospital name is required") {
		return
	}

	hospital, err := hc.hospitalService.CreateHospital(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "Hospital not found", "")
		return
	}
	respond(c, http.StatusCreated, "Hospital Created Successfully", hospital)
}

// Update handles PUT /hospitals/:id. The service list is replaced, not merged.
func (hc *HospitalController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Hospital not found")
	if !ok {
		return
	}
	var req models.HospitalRequest
	if !bindJSON(c, &req, "Hospital name is required") {
		return
	}

	hospital, err := hc.hospitalService.UpdateHospital(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err, "Hospital not found", "Not authorized to update this hospital")
		return
	}
	respond(c, http.StatusOK, "Hospital Updated Successfully", hospital)
}

// Delete handles DELETE /hospitals/:id
func (hc *HospitalController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Hospital not found")
	if !ok {
		return
	}

	if err := hc.hospitalService.DeleteHospital(c.Request.Context(), userID, id); err != nil {
		fail(c, err, "Hospital not found", "Not authorized to delete this hospital")
		return
	}
	respond(c, http.StatusOK, "Hospital deleted successfully", nil)
}
