package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"tawheed/src/db"
	"tawheed/src/middlewares"
	"tawheed/src/models"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type RouterTestSuite struct {
	suite.Suite
	Router *gin.Engine
	Role   models.Role
}

// stubAuth stands in for the real auth middleware so routes behind it can
// be exercised without a session store or database.
func (s *RouterTestSuite) stubAuth(ctx *gin.Context) {
	ctx.Set("id", uint(1))
	ctx.Set("email", "someone@example.com")
	ctx.Set("username", "someone")
	ctx.Set("role", string(s.Role))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	router := setupRouter()
	apiv1 := apiv1Group(router)

	auth := apiv1.Group("/auth")
	guestAuthRoutes(auth)
	authorized := auth.Group("")
	authorized.Use(s.stubAuth)
	authHandlers(authorized)

	bookings := apiv1.Group("/bookings")
	bookings.Use(s.stubAuth)
	bookingHandlers(bookings)

	adminBookings := apiv1.Group("/bookings/admin")
	adminBookings.Use(s.stubAuth)
	adminBookingHandlers(adminBookings)

	s.Router = router
}

// useMockDB swaps the shared gorm instance for a sqlmock-backed one so
// handler paths that touch storage can be exercised end to end.
func (s *RouterTestSuite) useMockDB() sqlmock.Sqlmock {
	conn, mock, err := sqlmock.New()
	s.Require().NoError(err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{})
	s.Require().NoError(err)

	db.NewDB(gormDB)
	return mock
}

func (s *RouterTestSuite) request(method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) TestPingRoute() {
	w := s.request("GET", "/", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestRegisterValidation() {
	w := s.request("POST", "/api/v1/auth/register", `{"email":"not-an-email"}`)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.request("POST", "/api/v1/auth/register", `{
		"first_name": "Amina", "last_name": "Yusuf",
		"email": "amina@example.com", "password": "supersecret",
		"role": "boss"
	}`)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(s.T(), gjson.GetBytes(body, "error").String(), "invalid role")
}

func (s *RouterTestSuite) TestPermissionsEchoForConsulting() {
	s.Role = models.RoleConsulting
	s.SetupTest()

	w := s.request("GET", "/api/v1/auth/permissions", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)

	assert.Equal(s.T(), "consulting", gjson.GetBytes(body, "role").String())
	assert.False(s.T(), gjson.GetBytes(body, "permissions.is_admin").Bool())
	assert.True(s.T(), gjson.GetBytes(body, "permissions.is_consulting").Bool())
	assert.True(s.T(), gjson.GetBytes(body, "permissions.is_seouser").Bool())
	assert.True(s.T(), gjson.GetBytes(body, "permissions.can_create_roles.user").Bool())
	assert.False(s.T(), gjson.GetBytes(body, "permissions.can_create_roles.admin").Bool())
	assert.False(s.T(), gjson.GetBytes(body, "permissions.can_manage_users").Bool())
}

func (s *RouterTestSuite) TestAdminBookingsRequireConsultingRank() {
	s.Role = models.RoleUser
	s.SetupTest()

	w := s.request("GET", "/api/v1/bookings/admin/bookings", "")
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), "Permission denied", gjson.GetBytes(body, "error").String())
}

func (s *RouterTestSuite) TestAdminBookingStatusValueIsChecked() {
	s.Role = models.RoleConsulting
	s.SetupTest()

	w := s.request(
		"PUT",
		"/api/v1/bookings/admin/bookings/update/7b0c0f2a-95a4-4bc9-a27e-2e6d9a5b7f10",
		`{"status":"archived"}`,
	)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), "Invalid status value", gjson.GetBytes(body, "error").String())
}

func (s *RouterTestSuite) TestToggleStatusOfSuperAdminIsRejected() {
	s.Role = models.RoleAdmin
	s.SetupTest()
	mock := s.useMockDB()

	rows := sqlmock.NewRows([]string{"id", "username", "role", "is_active"}).
		AddRow(9, "root", "superadmin", true)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(rows)

	w := s.request("POST", "/api/v1/auth/users/9/toggle-status", "")
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), "Permission denied", gjson.GetBytes(body, "error").String())
	// The guard must trip before any write reaches storage.
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *RouterTestSuite) TestOwnerUpdateOfConfirmedBookingConflicts() {
	s.Role = models.RoleUser
	s.SetupTest()
	mock := s.useMockDB()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "booking_id", "user_id", "status"}).
		AddRow(3, "7b0c0f2a-95a4-4bc9-a27e-2e6d9a5b7f10", 1, "confirmed")
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(rows)
	mock.ExpectRollback()

	w := s.request(
		"PUT",
		"/api/v1/bookings/update/7b0c0f2a-95a4-4bc9-a27e-2e6d9a5b7f10",
		`{"name":"Changed Name"}`,
	)
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), "Cannot update booking that is not pending", gjson.GetBytes(body, "error").String())
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *RouterTestSuite) TestCancelOfCancelledBookingSkipsWrite() {
	s.Role = models.RoleUser
	s.SetupTest()
	mock := s.useMockDB()

	rows := sqlmock.NewRows([]string{"id", "booking_id", "user_id", "status"}).
		AddRow(3, "7b0c0f2a-95a4-4bc9-a27e-2e6d9a5b7f10", 1, "cancelled")
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(rows)

	w := s.request("DELETE", "/api/v1/bookings/cancel/7b0c0f2a-95a4-4bc9-a27e-2e6d9a5b7f10", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), "Booking already cancelled", gjson.GetBytes(body, "message").String())
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *RouterTestSuite) TestUserUpdateDistinguishesStorageFailureFromMissingUser() {
	s.Role = models.RoleAdmin
	s.SetupTest()
	mock := s.useMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	w := s.request("PUT", "/api/v1/auth/users/5", `{"first_name":"Zaid"}`)
	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role", "is_active"}))
	mock.ExpectRollback()

	w = s.request("PUT", "/api/v1/auth/users/5", `{"first_name":"Zaid"}`)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, &RouterTestSuite{Role: models.RoleUser})
}

func TestRoleMiddlewareCutoff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		role models.Role
		want int
	}{
		{models.RoleSuperAdmin, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleConsulting, http.StatusForbidden},
		{models.RoleUser, http.StatusForbidden},
	} {
		router := gin.New()
		router.GET("/guarded", func(ctx *gin.Context) {
			ctx.Set("role", string(tc.role))
		}, middlewares.RoleMiddleware(models.RoleAdmin), func(ctx *gin.Context) {
			ctx.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/guarded", nil)
		router.ServeHTTP(w, req)
		assert.Equalf(t, tc.want, w.Code, "role %s", tc.role)
	}
}
