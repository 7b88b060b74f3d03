package main

import (
	"net/http"
	"tawheed/src/db"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"tawheed/src/types"
	"tawheed/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func packageResponse(p *models.Package) gin.H {
	return gin.H{
		"id":                   p.ID,
		"name":                 p.Name,
		"package_type":         p.PackageType,
		"package_type_display": p.PackageType.Display(),
		"description":          p.Description,
		"short_description":    p.ShortDescription,
		"price":                p.Price,
		"discounted_price":     p.DiscountedPrice,
		"effective_price":      p.EffectivePrice(),
		"duration_days":        p.DurationDays,
		"max_passengers":       p.MaxPassengers,
		"image":                p.Image,
		"includes":             p.Includes,
		"excludes":             p.Excludes,
		"itinerary":            p.Itinerary,
		"is_featured":          p.IsFeatured,
		"is_active":            p.IsActive,
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}

func packageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("", func(ctx *gin.Context) {
			d := db.GetDb()
			q := d.Model(&models.Package{}).Where("is_active = ?", true)
			if packageType := ctx.Query("package_type"); packageType != "" {
				q = q.Where("package_type = ?", packageType)
			}
			if featured := ctx.Query("is_featured"); featured != "" {
				q = q.Where("is_featured = ?", featured == "true")
			}
			if search := ctx.Query("search"); search != "" {
				q = q.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
			}
			switch ctx.Query("ordering") {
			case "price":
				q = q.Order("price asc")
			case "-price":
				q = q.Order("price desc")
			case "name":
				q = q.Order("name asc")
			default:
				q = q.Order("created_at desc")
			}
			var packages []models.Package
			if err := q.Find(&packages).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packages"})
				return
			}
			entries := make([]gin.H, 0, len(packages))
			for i := range packages {
				entries = append(entries, packageResponse(&packages[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"packages": entries, "count": len(entries)})
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var pkg models.Package
			err := d.
				Model(&models.Package{}).
				Where("id = ? AND is_active = ?", params.ID, true).
				First(&pkg).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
				return
			}
			ctx.JSON(http.StatusOK, packageResponse(&pkg))
		})

	admin := g.Group("")
	admin.Use(middlewares.AuthMiddleware, middlewares.RoleMiddleware(models.RoleAdmin))
	admin.
		POST("/create", func(ctx *gin.Context) {
			var body types.CreatePackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			category := models.PackageCategory(body.PackageType)
			if !category.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid package_type"})
				return
			}
			image := body.Image
			if image != "" {
				stored, err := utils.SaveBase64Media(image)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
					return
				}
				image = stored
			}
			pkg := models.Package{
				Name:             body.Name,
				PackageType:      category,
				Description:      body.Description,
				ShortDescription: body.ShortDescription,
				Price:            body.Price,
				DiscountedPrice:  body.DiscountedPrice,
				DurationDays:     body.DurationDays,
				MaxPassengers:    body.MaxPassengers,
				Image:            image,
				Includes:         body.Includes,
				Excludes:         body.Excludes,
				Itinerary:        body.Itinerary,
				IsActive:         true,
			}
			if body.IsFeatured != nil {
				pkg.IsFeatured = *body.IsFeatured
			}
			if body.IsActive != nil {
				pkg.IsActive = *body.IsActive
			}
			d := db.GetDb()
			if err := d.Create(&pkg).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"message": "Package created successfully",
				"package": packageResponse(&pkg),
			})
		}).
		PUT("/:id/update", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdatePackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.PackageType != nil && !models.PackageCategory(*body.PackageType).Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid package_type"})
				return
			}
			d := db.GetDb()
			var pkg models.Package
			badPayload := false
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&pkg, params.ID).Error; err != nil {
					return err
				}
				if body.Name != nil {
					pkg.Name = *body.Name
				}
				if body.PackageType != nil {
					pkg.PackageType = models.PackageCategory(*body.PackageType)
				}
				if body.Description != nil {
					pkg.Description = *body.Description
				}
				if body.ShortDescription != nil {
					pkg.ShortDescription = *body.ShortDescription
				}
				if body.Price != nil {
					pkg.Price = *body.Price
				}
				if body.DiscountedPrice != nil {
					pkg.DiscountedPrice = body.DiscountedPrice
				}
				if body.DurationDays != nil {
					pkg.DurationDays = *body.DurationDays
				}
				if body.MaxPassengers != nil {
					pkg.MaxPassengers = *body.MaxPassengers
				}
				if body.Image != nil {
					stored, err := utils.SaveBase64Media(*body.Image)
					if err != nil {
						badPayload = true
						return err
					}
					pkg.Image = stored
				}
				if body.Includes != nil {
					pkg.Includes = *body.Includes
				}
				if body.Excludes != nil {
					pkg.Excludes = *body.Excludes
				}
				if body.Itinerary != nil {
					pkg.Itinerary = *body.Itinerary
				}
				if body.IsFeatured != nil {
					pkg.IsFeatured = *body.IsFeatured
				}
				if body.IsActive != nil {
					pkg.IsActive = *body.IsActive
				}
				return tx.Save(&pkg).Error
			})
			if badPayload {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
				return
			}
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Package updated successfully",
				"package": packageResponse(&pkg),
			})
		})

	return g
}
