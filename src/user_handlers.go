package main

import (
	"errors"
	"fmt"
	"net/http"
	"tawheed/src/db"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"tawheed/src/types"
	"tawheed/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func userListEntry(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"name":         user.FullName(),
		"email":        user.Email,
		"phone":        user.Phone,
		"role":         user.Role,
		"role_display": user.Role.Display(),
		"is_active":    user.IsActive,
		"is_verified":  user.IsVerified,
		"created_at":   user.CreatedAt,
	}
}

// adminUserScope hides superadmin accounts from everyone below superadmin.
// An out-of-scope account behaves exactly like a missing one.
func adminUserScope(tx *gorm.DB, actorRole models.Role) *gorm.DB {
	if actorRole.IsSuperAdmin() {
		return tx
	}
	return tx.Where("role <> ?", models.RoleSuperAdmin)
}

func userAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/get-all", func(ctx *gin.Context) {
			d := db.GetDb()
			var users []models.User
			if err := d.Model(&models.User{}).Where("is_active = ?", true).Order("created_at desc").Find(&users).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
				return
			}
			entries := make([]gin.H, 0, len(users))
			for i := range users {
				entries = append(entries, userListEntry(&users[i]))
			}
			utils.LogActivity(ctx.GetUint("id"), models.ActionUsersViewed, "User viewed all users list", ctx.ClientIP())
			ctx.JSON(http.StatusOK, gin.H{
				"users":   entries,
				"count":   len(entries),
				"message": "Users retrieved successfully",
			})
		})

	admin := g.Group("")
	admin.Use(middlewares.RoleMiddleware(models.RoleAdmin))
	admin.
		GET("/users", func(ctx *gin.Context) {
			actorRole := models.Role(ctx.GetString("role"))
			d := db.GetDb()
			var users []models.User
			err := adminUserScope(d.Model(&models.User{}), actorRole).
				Order("created_at desc").
				Find(&users).
				Error
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
				return
			}
			entries := make([]gin.H, 0, len(users))
			for i := range users {
				entries = append(entries, userListEntry(&users[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"users": entries, "count": len(entries)})
		}).
		POST("/users/create", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorRole := models.Role(ctx.GetString("role"))
			user, status, err := registerAccount(&body, actorRole)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			utils.LogActivity(
				ctx.GetUint("id"),
				models.ActionUserCreated,
				fmt.Sprintf("Created user: %s with role: %s", user.Username, user.Role),
				ctx.ClientIP(),
			)
			ctx.JSON(http.StatusCreated, gin.H{
				"user":    profileResponse(user),
				"message": "User created successfully",
			})
		}).
		GET("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorRole := models.Role(ctx.GetString("role"))
			d := db.GetDb()
			var user models.User
			err := adminUserScope(d.Model(&models.User{}), actorRole).
				Where("id = ?", params.ID).
				First(&user).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, userListEntry(&user))
		}).
		PUT("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorRole := models.Role(ctx.GetString("role"))
			if body.Role != nil {
				requested := models.Role(*body.Role)
				if !requested.Valid() {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid role: %s", *body.Role)})
					return
				}
				if !actorRole.CanCreate(requested) {
					ctx.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("you don't have permission to assign role: %s", requested)})
					return
				}
			}
			d := db.GetDb()
			var user models.User
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := adminUserScope(tx.Model(&models.User{}), actorRole).
					Where("id = ?", params.ID).
					First(&user).
					Error; err != nil {
					return err
				}
				applyProfileUpdate(&user, &body.UpdateProfileRequestBody)
				if body.Email != nil {
					user.Email = *body.Email
				}
				if body.Role != nil {
					user.Role = models.Role(*body.Role)
				}
				return tx.Save(&user).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user"})
				return
			}
			utils.LogActivity(
				ctx.GetUint("id"),
				models.ActionUserUpdated,
				fmt.Sprintf("Updated user: %s", user.Username),
				ctx.ClientIP(),
			)
			ctx.JSON(http.StatusOK, userListEntry(&user))
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorRole := models.Role(ctx.GetString("role"))
			d := db.GetDb()
			var user models.User
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := adminUserScope(tx.Model(&models.User{}), actorRole).
					Where("id = ?", params.ID).
					First(&user).
					Error; err != nil {
					return err
				}
				return tx.Delete(&user).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
				return
			}
			utils.LogActivity(
				ctx.GetUint("id"),
				models.ActionUserDeleted,
				fmt.Sprintf("Deleted user: %s", user.Username),
				ctx.ClientIP(),
			)
			ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
		}).
		POST("/users/:id/toggle-status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorRole := models.Role(ctx.GetString("role"))
			d := db.GetDb()
			var user models.User
			if err := d.First(&user, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			// Nobody below superadmin may touch a superadmin account.
			if user.Role.IsSuperAdmin() && !actorRole.IsSuperAdmin() {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
				return
			}
			user.IsActive = !user.IsActive
			if err := d.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user status"})
				return
			}
			action := models.ActionUserDeactivated
			verb := "deactivated"
			if user.IsActive {
				action = models.ActionUserActivated
				verb = "activated"
			}
			utils.LogActivity(
				ctx.GetUint("id"),
				action,
				fmt.Sprintf("User %s %s", user.Username, verb),
				ctx.ClientIP(),
			)
			ctx.JSON(http.StatusOK, gin.H{
				"message":   fmt.Sprintf("User %s successfully", verb),
				"is_active": user.IsActive,
			})
		}).
		GET("/activities", func(ctx *gin.Context) {
			listActivities(ctx, nil)
		}).
		GET("/users/:id/activities", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			listActivities(ctx, &params.ID)
		})

	return g
}

func listActivities(ctx *gin.Context, userID *uint) {
	d := db.GetDb()
	q := d.Model(&models.UserActivity{}).Preload("User")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var activities []models.UserActivity
	if err := q.Order("timestamp desc").Find(&activities).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}
	entries := make([]gin.H, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		username := ""
		if a.User != nil {
			username = a.User.Username
		}
		entries = append(entries, gin.H{
			"id":          a.ID,
			"user":        a.UserID,
			"user_name":   username,
			"action":      a.Action,
			"description": a.Description,
			"ip_address":  a.IPAddress,
			"timestamp":   a.Timestamp,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"activities": entries, "count": len(entries)})
}
