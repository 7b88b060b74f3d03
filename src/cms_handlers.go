package main

import (
	"errors"
	"net/http"
	"strings"
	"tawheed/src/db"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"tawheed/src/types"
	"tawheed/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func cmsPackageResponse(p *models.CMSPackage) gin.H {
	return gin.H{
		"id":              p.ID,
		"package_type":    p.PackageType,
		"title":           p.Title,
		"description":     p.Description,
		"price":           p.Price,
		"effective_price": p.EffectivePrice(),
		"currency":        p.Currency,
		"image":           p.Image,
		"features":        p.Features,
		"features_list":   p.FeaturesList(),
		"duration_days":   p.DurationDays,
		"is_active":       p.IsActive,
		"is_featured":     p.IsFeatured,
		"created_at":      p.CreatedAt,
		"updated_at":      p.UpdatedAt,
	}
}

func storeMediaField(ctx *gin.Context, value *string, target *string) bool {
	if value == nil {
		return true
	}
	stored, err := utils.SaveBase64Media(*value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid media payload"})
		return false
	}
	*target = stored
	return true
}

func cmsHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/hero-section", func(ctx *gin.Context) {
			d := db.GetDb()
			var sections []models.HeroSection
			if err := d.Where("is_active = ?", true).Order("created_at desc").Find(&sections).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hero sections"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"hero_sections": sections, "count": len(sections)})
		}).
		GET("/components", func(ctx *gin.Context) {
			d := db.GetDb()
			q := d.Model(&models.Component{}).Where("is_active = ?", true)
			if componentType := ctx.Query("type"); componentType != "" {
				q = q.Where("component_type = ?", componentType)
			}
			var components []models.Component
			if err := q.Order("display_order asc, name asc").Find(&components).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve components"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"components": components, "count": len(components)})
		}).
		GET("/packages", func(ctx *gin.Context) {
			d := db.GetDb()
			q := d.Model(&models.CMSPackage{}).Where("is_active = ?", true)
			if packageType := ctx.Query("type"); packageType != "" {
				q = q.Where("package_type = ?", packageType)
			}
			var packages []models.CMSPackage
			if err := q.Order("package_type asc").Find(&packages).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packages"})
				return
			}
			entries := make([]gin.H, 0, len(packages))
			for i := range packages {
				entries = append(entries, cmsPackageResponse(&packages[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "count": len(entries), "packages": entries})
		}).
		GET("/packages/categories", func(ctx *gin.Context) {
			d := db.GetDb()
			grouped := gin.H{}
			for _, prefix := range []string{"umrah", "hajj", "ramadan"} {
				var packages []models.CMSPackage
				err := d.
					Model(&models.CMSPackage{}).
					Where("package_type LIKE ? AND is_active = ?", prefix+"_%", true).
					Order("package_type asc").
					Find(&packages).
					Error
				if err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packages"})
					return
				}
				entries := make([]gin.H, 0, len(packages))
				for i := range packages {
					entries = append(entries, cmsPackageResponse(&packages[i]))
				}
				grouped[prefix+"_packages"] = entries
			}
			ctx.JSON(http.StatusOK, grouped)
		}).
		GET("/packages/:package_type", func(ctx *gin.Context) {
			packageType := ctx.Param("package_type")
			d := db.GetDb()
			var pkg models.CMSPackage
			err := d.
				Model(&models.CMSPackage{}).
				Where("package_type = ? AND is_active = ?", packageType, true).
				First(&pkg).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
				return
			}
			ctx.JSON(http.StatusOK, cmsPackageResponse(&pkg))
		}).
		GET("/homepage", func(ctx *gin.Context) {
			d := db.GetDb()
			var pages []models.HomePage
			if err := d.Where("is_active = ?", true).Order("created_at desc").Find(&pages).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve homepage content"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"homepages": pages, "count": len(pages)})
		}).
		GET("/homepage/active", func(ctx *gin.Context) {
			d := db.GetDb()
			var page models.HomePage
			err := d.Where("is_active = ?", true).Order("created_at desc").First(&page).Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"message": "No active homepage content found"})
				return
			}
			ctx.JSON(http.StatusOK, page)
		})

	admin := g.Group("")
	admin.Use(middlewares.AuthMiddleware, middlewares.RoleMiddleware(models.RoleAdmin))
	admin.
		POST("/hero-section", func(ctx *gin.Context) {
			var body types.HeroSectionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			section := models.HeroSection{IsActive: true}
			if body.Title != nil {
				section.Title = *body.Title
			}
			if body.Subtitle != nil {
				section.Subtitle = *body.Subtitle
			}
			if !storeMediaField(ctx, body.BackgroundImage, &section.BackgroundImage) {
				return
			}
			if !storeMediaField(ctx, body.BackgroundVideo, &section.BackgroundVideo) {
				return
			}
			if body.IsActive != nil {
				section.IsActive = *body.IsActive
			}
			d := db.GetDb()
			if err := d.Create(&section).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, section)
		}).
		PUT("/hero-section/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.HeroSectionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var section models.HeroSection
			if err := d.First(&section, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Hero section not found"})
				return
			}
			if body.Title != nil {
				section.Title = *body.Title
			}
			if body.Subtitle != nil {
				section.Subtitle = *body.Subtitle
			}
			if !storeMediaField(ctx, body.BackgroundImage, &section.BackgroundImage) {
				return
			}
			if !storeMediaField(ctx, body.BackgroundVideo, &section.BackgroundVideo) {
				return
			}
			if body.IsActive != nil {
				section.IsActive = *body.IsActive
			}
			if err := d.Save(&section).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, section)
		}).
		POST("/components", func(ctx *gin.Context) {
			var body types.ComponentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			component := models.Component{IsActive: true}
			if ok := applyComponentUpdate(ctx, &component, &body); !ok {
				return
			}
			if !component.ComponentType.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid component_type"})
				return
			}
			d := db.GetDb()
			if err := d.Create(&component).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, component)
		}).
		PUT("/components/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ComponentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var component models.Component
			if err := d.First(&component, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
				return
			}
			if ok := applyComponentUpdate(ctx, &component, &body); !ok {
				return
			}
			if !component.ComponentType.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid component_type"})
				return
			}
			if err := d.Save(&component).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, component)
		}).
		POST("/packages/create", func(ctx *gin.Context) {
			var body types.CreateCMSPackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pkg := models.CMSPackage{
				PackageType: strings.ToLower(body.PackageType),
				Title:       body.Title,
				Description: body.Description,
				Price:       body.Price,
				Currency:    "USD",
				Features:    body.Features,
				IsActive:    true,
			}
			if body.Currency != "" {
				pkg.Currency = body.Currency
			}
			if body.DurationDays != nil {
				pkg.DurationDays = *body.DurationDays
			} else {
				pkg.DurationDays = 7
			}
			if body.IsActive != nil {
				pkg.IsActive = *body.IsActive
			}
			if body.IsFeatured != nil {
				pkg.IsFeatured = *body.IsFeatured
			}
			if body.Image != "" {
				if !storeMediaField(ctx, &body.Image, &pkg.Image) {
					return
				}
			}
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.CMSPackage{}).Where("package_type = ?", pkg.PackageType).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return errDuplicatePackageType
				}
				return tx.Create(&pkg).Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"message": "Package created successfully",
				"package": cmsPackageResponse(&pkg),
			})
		}).
		PUT("/packages/:package_type/update", func(ctx *gin.Context) {
			packageType := ctx.Param("package_type")
			var body types.UpdateCMSPackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var pkg models.CMSPackage
			if err := d.Where("package_type = ?", packageType).First(&pkg).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
				return
			}
			if body.Title != nil {
				pkg.Title = *body.Title
			}
			if body.Description != nil {
				pkg.Description = *body.Description
			}
			if body.Price != nil {
				pkg.Price = *body.Price
			}
			if body.Currency != nil {
				pkg.Currency = *body.Currency
			}
			if body.Features != nil {
				pkg.Features = *body.Features
			}
			if body.DurationDays != nil {
				pkg.DurationDays = *body.DurationDays
			}
			if body.IsActive != nil {
				pkg.IsActive = *body.IsActive
			}
			if body.IsFeatured != nil {
				pkg.IsFeatured = *body.IsFeatured
			}
			if !storeMediaField(ctx, body.Image, &pkg.Image) {
				return
			}
			if err := d.Save(&pkg).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Package updated successfully",
				"package": cmsPackageResponse(&pkg),
			})
		}).
		PATCH("/packages/:package_type/price", func(ctx *gin.Context) {
			packageType := ctx.Param("package_type")
			var body types.UpdateCMSPackagePriceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Price field is required"})
				return
			}
			d := db.GetDb()
			var pkg models.CMSPackage
			if err := d.Where("package_type = ?", packageType).First(&pkg).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
				return
			}
			if err := d.Model(&pkg).Update("price", body.Price).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":      "Package price updated successfully",
				"package_type": packageType,
				"new_price":    body.Price,
			})
		}).
		POST("/homepage", func(ctx *gin.Context) {
			var body types.HomePageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			page := models.HomePage{WelcomeTitle: "Welcome", IsActive: true}
			if ok := applyHomePageUpdate(ctx, &page, &body); !ok {
				return
			}
			d := db.GetDb()
			if err := d.Create(&page).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"message":  "Homepage content created successfully",
				"homepage": page,
			})
		}).
		PUT("/homepage/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.HomePageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var page models.HomePage
			if err := d.First(&page, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Homepage content not found"})
				return
			}
			if ok := applyHomePageUpdate(ctx, &page, &body); !ok {
				return
			}
			if err := d.Save(&page).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, page)
		})

	return g
}

var errDuplicatePackageType = errors.New("a package with this package_type already exists")

func applyComponentUpdate(ctx *gin.Context, component *models.Component, body *types.ComponentRequestBody) bool {
	if body.Name != nil {
		component.Name = *body.Name
	}
	if body.ComponentType != nil {
		component.ComponentType = models.ComponentType(*body.ComponentType)
	}
	if body.Title != nil {
		component.Title = *body.Title
	}
	if body.Description != nil {
		component.Description = *body.Description
	}
	if !storeMediaField(ctx, body.Image, &component.Image) {
		return false
	}
	if body.IsActive != nil {
		component.IsActive = *body.IsActive
	}
	if body.Order != nil {
		component.Order = *body.Order
	}
	return true
}

func applyHomePageUpdate(ctx *gin.Context, page *models.HomePage, body *types.HomePageRequestBody) bool {
	if body.Content != nil {
		page.Content = *body.Content
	}
	if body.WelcomeTitle != nil {
		page.WelcomeTitle = *body.WelcomeTitle
	}
	if body.WelcomeSubtitle != nil {
		page.WelcomeSubtitle = *body.WelcomeSubtitle
	}
	if !storeMediaField(ctx, body.BackgroundImage, &page.BackgroundImage) {
		return false
	}
	if !storeMediaField(ctx, body.BackgroundVideo, &page.BackgroundVideo) {
		return false
	}
	if body.IsActive != nil {
		page.IsActive = *body.IsActive
	}
	return true
}
