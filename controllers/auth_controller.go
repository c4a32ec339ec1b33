package controllers

import (
	"errors"

	"github.com/IT2357/Hotel-Management-sub000/configs"
	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// POST /auth/register — self-service signup is always a guest; staff and
// manager accounts are seeded.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	user := entity.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.RoleGuest,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		resp.BadRequest(c, "email already registered")
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var user entity.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Unauthorized(c, "invalid credentials")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, ac.Cfg.JWTSecret, ac.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "role": user.Role, "userId": user.ID})
}
