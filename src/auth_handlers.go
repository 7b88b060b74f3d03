package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"tawheed/src/db"
	"tawheed/src/models"
	"tawheed/src/types"
	"tawheed/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func profileResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"name":          user.FullName(),
		"email":         user.Email,
		"phone":         user.Phone,
		"date_of_birth": user.DateOfBirth,
		"address":       user.Address,
		"is_verified":   user.IsVerified,
		"role":          user.Role,
		"role_display":  user.Role.Display(),
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
}

func registerAccount(body *types.RegisterRequestBody, actorRole models.Role) (*models.User, int, error) {
	role := models.RoleUser
	if body.Role != "" {
		requested := models.Role(body.Role)
		if !requested.Valid() {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid role: %s", body.Role)
		}
		if actorRole == "" {
			// Anonymous signups always land on the lowest rank.
			role = models.RoleUser
		} else if !actorRole.CanCreate(requested) {
			return nil, http.StatusForbidden, fmt.Errorf("you don't have permission to create users with role: %s", requested)
		} else {
			role = requested
		}
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not create account")
	}

	d := db.GetDb()
	user := models.User{
		Email:     body.Email,
		Password:  hashed,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Role:      role,
		IsActive:  true,
	}
	err = d.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("a user with this email already exists")
		}
		user.Username = utils.DeriveUsername(body.Email, func(candidate string) bool {
			var n int64
			tx.Model(&models.User{}).Where("username = ?", candidate).Count(&n)
			return n > 0
		})
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &user, http.StatusCreated, nil
}

func guestAuthRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user, status, err := registerAccount(&body, "")
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			token, err := utils.IssueSessionToken(user)
			if err != nil {
				log.Printf("Error issuing session token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session token"})
				return
			}
			utils.LogActivity(user.ID, models.ActionUserRegistered, fmt.Sprintf("New user registered with role: %s", user.Role), ctx.ClientIP())
			ctx.JSON(http.StatusCreated, gin.H{
				"user":    profileResponse(user),
				"token":   token,
				"message": "User registered successfully",
			})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var user models.User
			err := d.Model(&models.User{}).Where("email = ?", body.Email).First(&user).Error
			if err != nil || !utils.CheckPassword(user.Password, body.Password) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
				return
			}
			if !user.IsActive {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "User account is disabled"})
				return
			}
			token, err := utils.IssueSessionToken(&user)
			if err != nil {
				log.Printf("Error issuing session token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session token"})
				return
			}
			utils.LogActivity(user.ID, models.ActionUserLogin, "User logged in", ctx.ClientIP())
			ctx.JSON(http.StatusOK, gin.H{
				"user":    profileResponse(&user),
				"token":   token,
				"message": "Login successful",
			})
		})
	return g
}

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/logout", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			jti := ctx.GetString("jti")
			if err := utils.RevokeSession(userId, jti); err != nil {
				log.Printf("Logout error: %s\n", err.Error())
				ctx.JSON(http.StatusOK, gin.H{"message": "Logout completed", "detail": err.Error()})
				return
			}
			utils.LogActivity(userId, models.ActionUserLogout, "User logged out", ctx.ClientIP())
			ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
		}).
		GET("/verify", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var user models.User
			if err := d.First(&user, userId).Error; err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Token verification failed"})
				return
			}
			utils.LogActivity(userId, models.ActionTokenVerified, "User token verified successfully", ctx.ClientIP())
			ctx.JSON(http.StatusOK, gin.H{
				"valid":   true,
				"user":    profileResponse(&user),
				"message": "Token is valid",
			})
		}).
		GET("/profile", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var user models.User
			if err := d.First(&user, userId).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, profileResponse(&user))
		}).
		PUT("/profile", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var user models.User
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&user, userId).Error; err != nil {
					return err
				}
				applyProfileUpdate(&user, &body)
				return tx.Save(&user).Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, profileResponse(&user))
		}).
		PUT("/change-password", func(ctx *gin.Context) {
			var body types.ChangePasswordRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.NewPassword != body.ConfirmPassword {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "New passwords don't match"})
				return
			}
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var user models.User
			if err := d.First(&user, userId).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			if !utils.CheckPassword(user.Password, body.OldPassword) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
				return
			}
			hashed, err := utils.HashPassword(body.NewPassword)
			if err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
				return
			}
			if err := d.Model(&user).Update("password", hashed).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			utils.LogActivity(userId, models.ActionPasswordChanged, "User changed password", ctx.ClientIP())
			ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
		}).
		GET("/permissions", func(ctx *gin.Context) {
			role := models.Role(ctx.GetString("role"))
			canCreate := gin.H{}
			for _, target := range models.AllRoles() {
				canCreate[string(target)] = role.CanCreate(target)
			}
			ctx.JSON(http.StatusOK, gin.H{
				"role":         role,
				"role_display": role.Display(),
				"permissions": gin.H{
					"can_manage_users": role.CanManageUsers(),
					"is_superadmin":    role.IsSuperAdmin(),
					"is_admin":         role.IsAdmin(),
					"is_consulting":    role.IsConsulting(),
					"is_seouser":       role.IsSEOUser(),
					"can_create_roles": canCreate,
				},
			})
		})

	userAdminHandlers(g)
	return g
}

func applyProfileUpdate(user *models.User, body *types.UpdateProfileRequestBody) {
	if body.FirstName != nil {
		user.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		user.LastName = *body.LastName
	}
	if body.Phone != nil {
		user.Phone = *body.Phone
	}
	if body.Address != nil {
		user.Address = *body.Address
	}
	if body.DateOfBirth != nil {
		if dob, err := utils.ParseDate(*body.DateOfBirth); err == nil {
			user.DateOfBirth = dob
		}
	}
}
