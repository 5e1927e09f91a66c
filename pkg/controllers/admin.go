package controllers

import (
	"net/http"

	"alternus-gallery-io/api/internal/auth"
	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminController struct {
	adminCollection *mongo.Collection
	rdb             *redis.Client
}

func InitAdminController(db *mongo.Database, rdb *redis.Client) *AdminController {
	return &AdminController{
		adminCollection: db.Collection("Admin"),
		rdb:             rdb,
	}
}

// Login handles POST /v1/admin/login. A matching email and password yields a
// short-lived access token.
func (ac *AdminController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var loginReq models.AdminLoginRequest
		if err := c.ShouldBindJSON(&loginReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&loginReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var admin models.Admin
		err := ac.adminCollection.FindOne(ctx, bson.M{"email": loginReq.Email}).Decode(&admin)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
			return
		}

		if !auth.CheckPasswordHash(loginReq.Password, admin.PasswordDigest) {
			util.HandleError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
			return
		}

		token, expiresAt, err := auth.GenerateJWT(admin.Id.Hex(), admin.Email, admin.Name)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Login successful", gin.H{
			"token":     token,
			"expiresAt": expiresAt,
			"admin": gin.H{
				"name":  admin.Name,
				"email": admin.Email,
			},
		})
	}
}

// Logout handles DELETE /v1/admin/logout by blacklisting the presented
// token.
func (ac *AdminController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractToken(c)
		if common.IsEmptyString(tokenString) {
			util.HandleError(c, http.StatusBadRequest, errors.New("request does not contain an access token"))
			return
		}

		if err := auth.InvalidateToken(ac.rdb, tokenString); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Logged out", nil)
	}
}
