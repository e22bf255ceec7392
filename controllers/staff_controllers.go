package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-core/models"
	"restaurant-core/repositories"
	"restaurant-core/utils"
)

type StaffController struct {
	Staff repositories.StaffRepository
}

func NewStaffController(staff repositories.StaffRepository) *StaffController {
	return &StaffController{Staff: staff}
}

// Register creates the Person base row. The person holds no role until
// specialized via AssignRole.
func (sc *StaffController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	person, err := sc.Staff.CreatePerson(c.Request.Context(), req.Name, req.Login, req.Password)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("New person registered: %s", person.Login)
	utils.RespondJSON(c, http.StatusCreated, "Person registered", person)
}

// AssignRole specializes a person into exactly one staff role.
func (sc *StaffController) AssignRole(c *gin.Context) {
	personID, err := pathID(c, "person_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Role         string `json:"role" binding:"required"`
		RestaurantID uint   `json:"restaurant_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var record interface{}
	switch req.Role {
	case models.RoleServer:
		record, err = sc.Staff.AssignServer(c.Request.Context(), personID, req.RestaurantID)
	case models.RoleCashier:
		record, err = sc.Staff.AssignCashier(c.Request.Context(), personID)
	case models.RoleKitchenStaff:
		record, err = sc.Staff.AssignKitchenStaff(c.Request.Context(), personID)
	case models.RoleManager:
		record, err = sc.Staff.AssignManager(c.Request.Context(), personID)
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role "+req.Role))
		return
	}
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Person %d specialized as %s", personID, req.Role)
	utils.RespondJSON(c, http.StatusCreated, "Role assigned", record)
}

func (sc *StaffController) GetPerson(c *gin.Context) {
	personID, err := pathID(c, "person_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	person, err := sc.Staff.GetPerson(c.Request.Context(), personID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	role, err := sc.Staff.PersonRole(c.Request.Context(), personID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Person details", gin.H{
		"person": person,
		"role":   role,
	})
}

func (sc *StaffController) DeletePerson(c *gin.Context) {
	personID, err := pathID(c, "person_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Staff.DeletePerson(c.Request.Context(), personID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Person %d deleted", personID)
	utils.RespondJSON(c, http.StatusOK, "Person deleted", nil)
}

// Login verifies credentials and returns a JWT carrying the person's
// role claim.
func (sc *StaffController) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	person, err := sc.Staff.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, err)
			return
		}
		utils.RespondDomainError(c, err)
		return
	}

	role, err := sc.Staff.PersonRole(c.Request.Context(), person.ID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	token, err := utils.GenerateToken(person.ID, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for %s (role=%s)", person.Login, role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  role,
	})
}

// pathID parses a numeric id path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name + ": " + raw)
	}
	return uint(id), nil
}
