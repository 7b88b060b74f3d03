package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"tawheed/src/db"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"tawheed/src/types"
	"tawheed/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func bookingResponse(b *models.Booking) gin.H {
	resp := gin.H{
		"booking_id":           b.BookingID,
		"name":                 b.Name,
		"email":                b.Email,
		"phone":                b.Phone,
		"package_type":         b.PackageType,
		"travel_month":         b.TravelMonth,
		"nights":               b.Nights,
		"passengers":           b.Passengers,
		"departure_date":       b.DepartureDate,
		"special_requirements": b.SpecialRequirements,
		"total_amount":         b.TotalAmount,
		"status":               b.Status,
		"status_display":       b.Status.Display(),
		"created_at":           b.CreatedAt,
		"updated_at":           b.UpdatedAt,
	}
	if b.Package != nil {
		resp["package"] = b.PackageID
		resp["package_details"] = gin.H{
			"id":                b.Package.ID,
			"name":              b.Package.Name,
			"package_type":      b.Package.PackageType,
			"short_description": b.Package.ShortDescription,
			"price":             b.Package.Price,
			"discounted_price":  b.Package.DiscountedPrice,
			"effective_price":   b.Package.EffectivePrice(),
			"duration_days":     b.Package.DurationDays,
			"image":             b.Package.Image,
			"is_featured":       b.Package.IsFeatured,
		}
	}
	return resp
}

var errMissingPackageRef = errors.New("referenced package does not exist")

// resolveBookingPackage backfills the catalog reference from the free-text
// package_type label when no explicit reference is given, then recomputes
// the total. Without a linked package the client-declared total stands.
func resolveBookingPackage(tx *gorm.DB, booking *models.Booking, explicit *uint, clientTotal float64) error {
	var pkg *models.Package
	if explicit != nil {
		var found models.Package
		if err := tx.First(&found, *explicit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errMissingPackageRef
			}
			return err
		}
		pkg = &found
	} else if booking.PackageType != "" {
		matched, err := utils.MatchPackageType(tx, booking.PackageType)
		if err != nil {
			return err
		}
		pkg = matched
	}
	if pkg != nil {
		booking.PackageID = &pkg.ID
		booking.Package = pkg
		booking.TotalAmount = utils.BookingTotal(pkg, booking.Passengers)
	} else {
		booking.PackageID = nil
		booking.Package = nil
		booking.TotalAmount = clientTotal
	}
	return nil
}

func findOwnBooking(tx *gorm.DB, bookingID string, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.
		Model(&models.Booking{}).
		Where("booking_id = ? AND user_id = ?", bookingID, userID).
		Preload("Package").
		First(&booking).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/create", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking := models.Booking{
				UserID:              userId,
				Name:                body.Name,
				Email:               body.Email,
				Phone:               body.Phone,
				PackageType:         body.PackageType,
				TravelMonth:         body.TravelMonth,
				Nights:              body.Nights,
				Passengers:          body.Passengers,
				SpecialRequirements: body.SpecialRequirements,
				Status:              models.BookingPending,
			}
			if body.DepartureDate != nil {
				date, err := utils.ParseDate(*body.DepartureDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_date"})
					return
				}
				booking.DepartureDate = date
			}
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := resolveBookingPackage(tx, &booking, body.Package, body.TotalAmount); err != nil {
					return err
				}
				return tx.Create(&booking).Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"success":    true,
				"message":    "Booking created successfully",
				"booking_id": booking.BookingID.String(),
				"booking":    bookingResponse(&booking),
			})
		}).
		GET("/my-bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var bookings []models.Booking
			err := d.
				Model(&models.Booking{}).
				Where("user_id = ?", userId).
				Order("created_at desc").
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
				return
			}
			entries := make([]gin.H, 0, len(bookings))
			for i := range bookings {
				entries = append(entries, bookingResponse(&bookings[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"bookings": entries, "count": len(entries)})
		}).
		GET("/track/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := findOwnBooking(db.GetDb(), params.BookingID, ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "booking": bookingResponse(booking)})
		}).
		GET("/detail/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := findOwnBooking(db.GetDb(), params.BookingID, ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, bookingResponse(booking))
		}).
		GET("/qr/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := findOwnBooking(db.GetDb(), params.BookingID, ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			qrc, err := qrcode.New(booking.BookingID.String())
			if err != nil {
				log.Printf("Could not build qrcode for booking %s: %s\n", booking.BookingID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tracking code"})
				return
			}
			tempdir := os.TempDir()
			filepath := path.Join(tempdir, fmt.Sprintf("booking-%s.jpeg", booking.BookingID))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate tracking code"})
				return
			}
			ctx.File(filepath)
		}).
		PUT("/update/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var booking *models.Booking
			notFound := false
			conflict := false
			err := d.Transaction(func(tx *gorm.DB) error {
				found, err := findOwnBooking(tx, params.BookingID, ctx.GetUint("id"))
				if err != nil {
					notFound = errors.Is(err, gorm.ErrRecordNotFound)
					return err
				}
				booking = found
				if booking.Status != models.BookingPending {
					conflict = true
					return errors.New("cannot update booking that is not pending")
				}
				repriced := applyBookingUpdate(booking, &body)
				if repriced {
					if err := resolveBookingPackage(tx, booking, bookingPackageRef(booking, &body), booking.TotalAmount); err != nil {
						return err
					}
				}
				return tx.Save(booking).Error
			})
			if notFound {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			if conflict {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Cannot update booking that is not pending"})
				return
			}
			if err != nil {
				if errors.Is(err, errMissingPackageRef) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Booking updated successfully",
				"booking": bookingResponse(booking),
			})
		}).
		DELETE("/cancel/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			booking, err := findOwnBooking(d, params.BookingID, ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			if booking.Status == models.BookingCancelled {
				ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking already cancelled"})
				return
			}
			if !models.CanTransition(booking.Status, models.BookingCancelled) {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Cannot cancel completed booking"})
				return
			}
			if err := d.Model(booking).Update("status", models.BookingCancelled).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not cancel booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully"})
		})

	return g
}

// applyBookingUpdate copies the provided fields onto the record and reports
// whether the package reference or passenger count changed, which forces a
// reprice.
func applyBookingUpdate(booking *models.Booking, body *types.UpdateBookingRequestBody) bool {
	repriced := body.Package != nil
	if body.Name != nil {
		booking.Name = *body.Name
	}
	if body.Email != nil {
		booking.Email = *body.Email
	}
	if body.Phone != nil {
		booking.Phone = *body.Phone
	}
	if body.PackageType != nil && *body.PackageType != booking.PackageType {
		booking.PackageType = *body.PackageType
		repriced = true
	}
	if body.TravelMonth != nil {
		booking.TravelMonth = *body.TravelMonth
	}
	if body.Nights != nil {
		booking.Nights = *body.Nights
	}
	if body.Passengers != nil && *body.Passengers != booking.Passengers {
		booking.Passengers = *body.Passengers
		repriced = true
	}
	if body.DepartureDate != nil {
		if date, err := utils.ParseDate(*body.DepartureDate); err == nil {
			booking.DepartureDate = date
		}
	}
	if body.SpecialRequirements != nil {
		booking.SpecialRequirements = *body.SpecialRequirements
	}
	return repriced
}

func bookingPackageRef(booking *models.Booking, body *types.UpdateBookingRequestBody) *uint {
	if body.Package != nil {
		return body.Package
	}
	if body.PackageType != nil {
		// Label changed, rerun the catalog match from scratch.
		return nil
	}
	return booking.PackageID
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.Use(middlewares.RoleMiddleware(models.RoleConsulting))
	g.
		GET("/bookings", func(ctx *gin.Context) {
			d := db.GetDb()
			q := d.Model(&models.Booking{}).Preload("Package")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			if packageType := ctx.Query("package_type"); packageType != "" {
				q = q.Where("package_type ILIKE ?", "%"+packageType+"%")
			}
			if travelMonth := ctx.Query("travel_month"); travelMonth != "" {
				q = q.Where("travel_month ILIKE ?", "%"+travelMonth+"%")
			}
			var bookings []models.Booking
			if err := q.Order("created_at desc").Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
				return
			}
			entries := make([]gin.H, 0, len(bookings))
			for i := range bookings {
				entries = append(entries, bookingResponse(&bookings[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"bookings": entries, "count": len(entries)})
		}).
		GET("/bookings-details/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var booking models.Booking
			err := d.
				Model(&models.Booking{}).
				Where("booking_id = ?", params.BookingID).
				Preload("Package").
				First(&booking).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "booking": bookingResponse(&booking)})
		}).
		PUT("/bookings/update/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status field is required"})
				return
			}
			newStatus := models.BookingStatus(body.Status)
			if !newStatus.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
				return
			}
			d := db.GetDb()
			var booking models.Booking
			err := d.
				Model(&models.Booking{}).
				Where("booking_id = ?", params.BookingID).
				Preload("Package").
				First(&booking).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			if !models.CanTransition(booking.Status, newStatus) {
				ctx.JSON(http.StatusConflict, gin.H{
					"error": fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, newStatus),
				})
				return
			}
			if booking.Status != newStatus {
				if err := d.Model(&booking).Update("status", newStatus).Error; err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update booking status"})
					return
				}
				booking.Status = newStatus
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": fmt.Sprintf("Booking status updated to %s", newStatus),
				"booking": bookingResponse(&booking),
			})
		}).
		DELETE("/bookings/cancel/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var booking models.Booking
			err := d.
				Model(&models.Booking{}).
				Where("booking_id = ?", params.BookingID).
				First(&booking).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			if booking.Status == models.BookingCancelled {
				ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking already cancelled"})
				return
			}
			if !models.CanTransition(booking.Status, models.BookingCancelled) {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Cannot cancel completed booking"})
				return
			}
			if err := d.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not cancel booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully"})
		}).
		DELETE("/bookings/:booking_id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var booking models.Booking
			err := d.
				Model(&models.Booking{}).
				Where("booking_id = ?", params.BookingID).
				First(&booking).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			// Hard deletes are limited to records that never reached a
			// protected state: pending or already cancelled.
			if booking.Status == models.BookingConfirmed || booking.Status == models.BookingCompleted {
				ctx.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("cannot delete a %s booking", booking.Status)})
				return
			}
			if err := d.Delete(&booking).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
		})

	return g
}
