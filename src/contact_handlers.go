package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"tawheed/src/db"
	"tawheed/src/lib"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"tawheed/src/types"

	"github.com/gin-gonic/gin"
)

func contactHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("", func(ctx *gin.Context) {
			var body types.ContactUsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			entry := models.ContactUs{
				Name:        body.Name,
				Email:       body.Email,
				Phone:       body.Phone,
				PackageType: body.PackageType,
				Message:     body.Message,
			}
			d := db.GetDb()
			if err := d.Create(&entry).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			go notifyContactIntake(&entry)
			ctx.JSON(http.StatusCreated, gin.H{
				"message": "Thank you for contacting us. We will get back to you soon.",
			})
		})

	staff := g.Group("")
	staff.Use(middlewares.AuthMiddleware, middlewares.RoleMiddleware(models.RoleConsulting))
	staff.
		GET("/list", func(ctx *gin.Context) {
			d := db.GetDb()
			var entries []models.ContactUs
			if err := d.Order("created_at desc").Find(&entries).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact entries"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"contacts": entries, "count": len(entries)})
		}).
		PUT("/:id/processed", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var entry models.ContactUs
			if err := d.First(&entry, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact entry not found"})
				return
			}
			if err := d.Model(&entry).Update("is_processed", true).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update contact entry"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Contact entry marked as processed", "is_processed": true})
		})

	return g
}

// notifyContactIntake mails the sales inbox about a new lead. Best effort,
// the stored record is the source of truth.
func notifyContactIntake(entry *models.ContactUs) {
	inbox := os.Getenv("CONTACT_INBOX")
	sender := os.Getenv("CONTACT_SENDER")
	if inbox == "" || sender == "" {
		return
	}
	subject := fmt.Sprintf("New contact request from %s", entry.Name)
	bodyText := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nPackage type: %s\n\n%s\n",
		entry.Name, entry.Email, entry.Phone, entry.PackageType, entry.Message,
	)
	err := lib.SendMail(&lib.SendMailInput{
		From:     sender,
		FromName: "Website Contact Form",
		To:       []string{inbox},
		ReplyTo:  entry.Email,
		Subject:  subject,
		Body:     bodyText,
	})
	if err != nil {
		log.Printf("Could not send contact notification for entry %d: %s\n", entry.ID, err.Error())
	}
}
