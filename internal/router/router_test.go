package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/chachabrian/umrah-travel-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("AT_USERNAME", "")
	t.Setenv("AT_API_KEY", "")
	t.Setenv("AGENCY_EMAIL", "")
	services.RedisClient = nil
	require.NoError(t, services.InitLocalStorage(t.TempDir(), "http://api.test"))

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name))
	require.NoError(t, err)

	notifier := services.NewNotifier(db, services.NewHub())
	t.Cleanup(func() {
		notifier.Wait()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testServer{t: t, db: db, engine: Setup(db, services.NewHub(), notifier)}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) admin(username string, role models.Role) (*models.AdminUser, string) {
	s.t.Helper()
	user := &models.AdminUser{
		Username: username,
		Email:    username + "@alsafa.test",
		Password: "correct-horse",
		Role:     role,
		IsActive: true,
	}
	require.NoError(s.t, user.HashPassword())
	_, err := database.CreateAdminUser(context.Background(), s.db, user)
	require.NoError(s.t, err)

	token, _, err := utils.GenerateToken(user, time.Now())
	require.NoError(s.t, err)
	return user, token
}

func (s *testServer) trip(title string, start, end time.Time, active bool) *models.Trip {
	s.t.Helper()
	trip, err := database.CreateTrip(context.Background(), s.db, &models.Trip{
		Title:          title,
		Destination:    "Makkah & Madinah",
		StartDate:      start,
		EndDate:        end,
		Duration:       "14 days",
		Price:          2500,
		Description:    "Five star **hotels** near the Haram",
		IsActive:       active,
		AvailableSlots: 40,
	})
	require.NoError(s.t, err)
	return trip
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func bookingForm(tripID uint) map[string]interface{} {
	return map[string]interface{}{
		"tripId":                tripID,
		"name":                  "Amina Hassan",
		"email":                 "amina@example.com",
		"phone":                 "+254700000001",
		"numberOfTravelers":     2,
		"dateOfBirth":           "1990-04-12",
		"passportNumber":        "AK123456",
		"address":               "12 Moi Avenue, Nairobi",
		"emergencyContactName":  "Omar Hassan",
		"emergencyContactPhone": "+254700000002",
	}
}

func TestPublicTripListing(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	upcoming := s.trip("Ramadan Umrah", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), true)
	s.trip("Hajj last year", now.AddDate(-1, 0, 0), now.AddDate(-1, 0, 20), true)
	hidden := s.trip("Draft package", now.AddDate(0, 2, 0), now.AddDate(0, 2, 10), false)

	w := s.do("GET", "/api/trips", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["trips"], 2)

	w = s.do("GET", "/api/trips?filter=upcoming", nil, "")
	require.Equal(t, 200, w.Code)
	trips := decode(t, w)["trips"].([]interface{})
	require.Len(t, trips, 1)
	first := trips[0].(map[string]interface{})
	assert.Equal(t, "Ramadan Umrah", first["title"])
	assert.Equal(t, "upcoming", first["category"])

	w = s.do("GET", "/api/trips?filter=past", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["trips"], 1)

	w = s.do("GET", "/api/trips?filter=soon", nil, "")
	assert.Equal(t, 400, w.Code)

	w = s.do("GET", fmt.Sprintf("/api/trips/%d", upcoming.ID), nil, "")
	require.Equal(t, 200, w.Code)
	trip := decode(t, w)["trip"].(map[string]interface{})
	assert.Contains(t, trip["descriptionHtml"], "<strong>hotels</strong>")

	w = s.do("GET", fmt.Sprintf("/api/trips/%d", hidden.ID), nil, "")
	assert.Equal(t, 404, w.Code)
}

func TestPublicBookingSubmission(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	trip := s.trip("Ramadan Umrah", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), true)

	form := bookingForm(trip.ID)
	form["specialRequests"] = "Wheelchair assistance"
	w := s.do("POST", "/api/bookings", form, "")
	require.Equal(t, 201, w.Code, w.Body.String())

	booking := decode(t, w)["booking"].(map[string]interface{})
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, 5000.0, booking["totalPrice"])
	assert.Equal(t,
		"Address: 12 Moi Avenue, Nairobi\n"+
			"Date of Birth: 1990-04-12\n"+
			"Passport Number: AK123456\n"+
			"Emergency Contact: Omar Hassan (+254700000002)\n"+
			"Special Requests: Wheelchair assistance",
		booking["specialRequests"])

	// price changes later do not touch the stored total
	_, err := database.UpdateTrip(context.Background(), s.db, trip.ID, map[string]interface{}{"price": 9999.0})
	require.NoError(t, err)
	stored, err := database.GetBooking(context.Background(), s.db, uint(booking["id"].(float64)))
	require.NoError(t, err)
	assert.Equal(t, 5000.0, stored.TotalPrice)
}

func TestPublicBookingRejections(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	inactive := s.trip("Closed", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), false)

	w := s.do("POST", "/api/bookings", bookingForm(9999), "")
	assert.Equal(t, 404, w.Code)

	w = s.do("POST", "/api/bookings", bookingForm(inactive.ID), "")
	assert.Equal(t, 404, w.Code)

	form := bookingForm(inactive.ID)
	delete(form, "passportNumber")
	w = s.do("POST", "/api/bookings", form, "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "passportNumber is required", decode(t, w)["error"])

	form = bookingForm(inactive.ID)
	form["email"] = "not-an-email"
	w = s.do("POST", "/api/bookings", form, "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "email must be a valid email address", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "BookingForm")

	form = bookingForm(inactive.ID)
	form["numberOfTravelers"] = 0
	w = s.do("POST", "/api/bookings", form, "")
	assert.Equal(t, 400, w.Code)

	count, err := database.CountBookings(context.Background(), s.db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLoginSessionLogout(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.admin("fatima", models.RoleEditor)

	w := s.do("POST", "/api/admin/auth/login", map[string]string{"email": user.Email, "password": "wrong"}, "")
	assert.Equal(t, 401, w.Code)

	w = s.do("POST", "/api/admin/auth/login", map[string]string{"email": user.Email, "password": "correct-horse"}, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	body := decode(t, w)
	token := body["token"].(string)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = s.do("GET", "/api/admin/auth/session", nil, token)
	require.Equal(t, 200, w.Code)
	session := decode(t, w)
	assert.Equal(t, "authenticated", session["state"])
	assert.Equal(t, user.Email, session["user"].(map[string]interface{})["email"])

	stored, err := database.GetAdminUser(context.Background(), s.db, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	w = s.do("GET", "/api/admin/auth/session", nil, "")
	assert.Equal(t, 401, w.Code)

	w = s.do("POST", "/api/admin/auth/logout", nil, token)
	assert.Equal(t, 200, w.Code)
}

func TestInactiveAdminIsRejected(t *testing.T) {
	s := newTestServer(t)
	user, token := s.admin("yusuf", models.RoleAdmin)
	_, err := database.UpdateAdminUser(context.Background(), s.db, user.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	w := s.do("GET", "/api/admin/dashboard", nil, token)
	assert.Equal(t, 401, w.Code)

	w = s.do("POST", "/api/admin/auth/login", map[string]string{"email": user.Email, "password": "correct-horse"}, "")
	assert.Equal(t, 403, w.Code)
}

func TestRoleGating(t *testing.T) {
	s := newTestServer(t)
	_, editorToken := s.admin("editor", models.RoleEditor)
	adminUser, adminToken := s.admin("manager", models.RoleAdmin)
	_, superToken := s.admin("owner", models.RoleSuperAdmin)

	now := time.Now()
	trip := s.trip("Umrah", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), true)
	w := s.do("POST", "/api/bookings", bookingForm(trip.ID), "")
	require.Equal(t, 201, w.Code)
	bookingID := uint(decode(t, w)["booking"].(map[string]interface{})["id"].(float64))

	w = s.do("DELETE", fmt.Sprintf("/api/admin/bookings/%d", bookingID), nil, editorToken)
	assert.Equal(t, 403, w.Code)
	w = s.do("DELETE", fmt.Sprintf("/api/admin/bookings/%d", bookingID), nil, adminToken)
	assert.Equal(t, 200, w.Code)
	w = s.do("DELETE", fmt.Sprintf("/api/admin/bookings/%d", bookingID), nil, adminToken)
	assert.Equal(t, 404, w.Code)

	w = s.do("GET", "/api/admin/users", nil, editorToken)
	assert.Equal(t, 403, w.Code)
	w = s.do("GET", "/api/admin/users", nil, adminToken)
	assert.Equal(t, 200, w.Code)

	promote := map[string]string{"role": "super_admin"}
	w = s.do("PUT", fmt.Sprintf("/api/admin/users/%d", adminUser.ID), promote, adminToken)
	assert.Equal(t, 403, w.Code)
	w = s.do("PUT", fmt.Sprintf("/api/admin/users/%d", adminUser.ID), promote, superToken)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "super_admin", decode(t, w)["user"].(map[string]interface{})["role"])

	w = s.do("DELETE", fmt.Sprintf("/api/admin/users/%d", adminUser.ID), nil, adminToken)
	assert.Equal(t, 400, w.Code)
	_, err := database.GetAdminUser(context.Background(), s.db, adminUser.ID)
	assert.NoError(t, err)
}

func TestUpdatePasswordMismatchWritesNothing(t *testing.T) {
	s := newTestServer(t)
	user, token := s.admin("khadija", models.RoleEditor)

	w := s.do("PUT", "/api/admin/auth/password", map[string]string{
		"currentPassword": "correct-horse",
		"newPassword":     "new-password-1",
		"confirmPassword": "new-password-2",
	}, token)
	assert.Equal(t, 400, w.Code)

	stored, err := database.GetAdminUser(context.Background(), s.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)

	w = s.do("PUT", "/api/admin/auth/password", map[string]string{
		"currentPassword": "correct-horse",
		"newPassword":     "new-password-1",
		"confirmPassword": "new-password-1",
	}, token)
	require.Equal(t, 200, w.Code)

	stored, err = database.GetAdminUser(context.Background(), s.db, user.ID)
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("new-password-1"))
}

func TestPasswordReset(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.admin("zainab", models.RoleEditor)

	w := s.do("POST", "/api/admin/auth/forgot-password", map[string]string{"email": "nobody@alsafa.test"}, "")
	assert.Equal(t, 200, w.Code)

	_, err := database.CreateOTP(context.Background(), s.db, &models.OTP{
		AdminUserID: user.ID,
		Code:        "4821",
		Type:        models.OTPTypePasswordReset,
		ExpiresAt:   time.Now().Add(utils.OTPExpiration),
	})
	require.NoError(t, err)

	w = s.do("POST", "/api/admin/auth/reset-password", map[string]string{
		"email": user.Email, "otp": "1111", "newPassword": "brand-new-pass",
	}, "")
	assert.Equal(t, 400, w.Code)

	reset := map[string]string{"email": user.Email, "otp": "4821", "newPassword": "brand-new-pass"}
	w = s.do("POST", "/api/admin/auth/reset-password", reset, "")
	require.Equal(t, 200, w.Code, w.Body.String())

	// codes are single use
	w = s.do("POST", "/api/admin/auth/reset-password", reset, "")
	assert.Equal(t, 400, w.Code)

	w = s.do("POST", "/api/admin/auth/login", map[string]string{"email": user.Email, "password": "brand-new-pass"}, "")
	assert.Equal(t, 200, w.Code)
}

func TestPasswordResetCodeBurnsAfterFailedGuesses(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.admin("hafsa", models.RoleEditor)

	_, err := database.CreateOTP(context.Background(), s.db, &models.OTP{
		AdminUserID: user.ID,
		Code:        "9999",
		Type:        models.OTPTypePasswordReset,
		ExpiresAt:   time.Now().Add(utils.OTPExpiration),
	})
	require.NoError(t, err)

	for i := 0; i < utils.MaxOTPAttempts; i++ {
		w := s.do("POST", "/api/admin/auth/reset-password", map[string]string{
			"email": user.Email, "otp": fmt.Sprintf("%04d", 1000+i), "newPassword": "taken-over-pass",
		}, "")
		require.Equal(t, 400, w.Code)
	}

	w := s.do("POST", "/api/admin/auth/reset-password", map[string]string{
		"email": user.Email, "otp": "9999", "newPassword": "taken-over-pass",
	}, "")
	assert.Equal(t, 400, w.Code)

	w = s.do("POST", "/api/admin/auth/login", map[string]string{"email": user.Email, "password": "correct-horse"}, "")
	assert.Equal(t, 200, w.Code)
}

func TestMixedCaseEmailLogin(t *testing.T) {
	s := newTestServer(t)
	_, superToken := s.admin("owner", models.RoleSuperAdmin)

	w := s.do("POST", "/api/admin/users", map[string]string{
		"username": "fatima", "email": "Fatima@Agency.test", "password": "correct-horse",
	}, superToken)
	require.Equal(t, 201, w.Code, w.Body.String())
	assert.Equal(t, "fatima@agency.test", decode(t, w)["user"].(map[string]interface{})["email"])

	for _, email := range []string{"Fatima@Agency.test", "fatima@agency.test", "FATIMA@AGENCY.TEST"} {
		w = s.do("POST", "/api/admin/auth/login", map[string]string{"email": email, "password": "correct-horse"}, "")
		assert.Equal(t, 200, w.Code, email)
	}
}

func TestUserManagementKeepsSuperAdmin(t *testing.T) {
	s := newTestServer(t)
	owner, superToken := s.admin("owner", models.RoleSuperAdmin)
	manager, adminToken := s.admin("manager", models.RoleAdmin)

	ownerPath := fmt.Sprintf("/api/admin/users/%d", owner.ID)
	w := s.do("PUT", ownerPath, map[string]bool{"isActive": false}, adminToken)
	assert.Equal(t, 403, w.Code)
	w = s.do("DELETE", ownerPath, nil, adminToken)
	assert.Equal(t, 403, w.Code)

	// the only super admin cannot step down
	w = s.do("PUT", ownerPath, map[string]string{"role": "admin"}, superToken)
	assert.Equal(t, 400, w.Code)

	w = s.do("PUT", fmt.Sprintf("/api/admin/users/%d", manager.ID), map[string]string{"role": "super_admin"}, superToken)
	require.Equal(t, 200, w.Code)

	w = s.do("PUT", ownerPath, map[string]string{"role": "admin"}, superToken)
	require.Equal(t, 200, w.Code, w.Body.String())

	stored, err := database.GetAdminUser(context.Background(), s.db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)

	n, err := database.CountActiveAdminUsers(context.Background(), s.db, models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTripAdminValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)

	trip := map[string]interface{}{
		"title":       "Winter Umrah",
		"destination": "Makkah",
		"startDate":   "2026-12-10",
		"endDate":     "2026-12-01",
		"price":       1800,
	}
	w := s.do("POST", "/api/admin/trips", trip, token)
	assert.Equal(t, 400, w.Code)

	trip["startDate"] = "10/12/2026"
	w = s.do("POST", "/api/admin/trips", trip, token)
	assert.Equal(t, 400, w.Code)

	count, err := database.CountTrips(context.Background(), s.db)
	require.NoError(t, err)
	assert.Zero(t, count)

	trip["startDate"] = "2026-11-20"
	w = s.do("POST", "/api/admin/trips", trip, token)
	require.Equal(t, 201, w.Code, w.Body.String())
	created := decode(t, w)["trip"].(map[string]interface{})
	assert.Equal(t, true, created["isActive"])
	id := uint(created["id"].(float64))

	w = s.do("PUT", fmt.Sprintf("/api/admin/trips/%d", id), map[string]interface{}{"endDate": "2026-11-01"}, token)
	assert.Equal(t, 400, w.Code)

	w = s.do("PUT", fmt.Sprintf("/api/admin/trips/%d", id), map[string]interface{}{"isActive": false, "price": 2100}, token)
	require.Equal(t, 200, w.Code)
	updated := decode(t, w)["trip"].(map[string]interface{})
	assert.Equal(t, false, updated["isActive"])
	assert.Equal(t, 2100.0, updated["price"])

	w = s.do("GET", "/api/admin/trips", nil, token)
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["trips"], 1)

	w = s.do("DELETE", fmt.Sprintf("/api/admin/trips/%d", id), nil, token)
	assert.Equal(t, 200, w.Code)
	w = s.do("GET", fmt.Sprintf("/api/admin/trips/%d", id), nil, token)
	assert.Equal(t, 404, w.Code)
}

func TestBookingStatusAndExport(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)
	now := time.Now()
	trip := s.trip("Umrah", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), true)

	w := s.do("POST", "/api/bookings", bookingForm(trip.ID), "")
	require.Equal(t, 201, w.Code)
	id := uint(decode(t, w)["booking"].(map[string]interface{})["id"].(float64))

	w = s.do("PATCH", fmt.Sprintf("/api/admin/bookings/%d/status", id), map[string]string{"status": "shipped"}, token)
	assert.Equal(t, 400, w.Code)

	w = s.do("PATCH", fmt.Sprintf("/api/admin/bookings/%d/status", id), map[string]string{"status": "confirmed"}, token)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "confirmed", decode(t, w)["booking"].(map[string]interface{})["status"])

	w = s.do("GET", "/api/admin/bookings?status=confirmed", nil, token)
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["bookings"], 1)
	w = s.do("GET", "/api/admin/bookings?status=pending", nil, token)
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["bookings"], 0)

	w = s.do("GET", "/api/admin/bookings/export", nil, token)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), services.BookingExportFilename(time.Now()))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestDashboardCounts(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)
	now := time.Now()
	trip := s.trip("Umrah", now.AddDate(0, 1, 0), now.AddDate(0, 1, 14), true)
	require.Equal(t, 201, s.do("POST", "/api/bookings", bookingForm(trip.ID), "").Code)

	w := s.do("GET", "/api/admin/dashboard", nil, token)
	require.Equal(t, 200, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["trips"].(map[string]interface{})["value"])
	assert.Equal(t, 1.0, stats["bookings"].(map[string]interface{})["value"])
	assert.Equal(t, 1.0, stats["pendingBookings"].(map[string]interface{})["value"])
	assert.Equal(t, 0.0, stats["gallery"].(map[string]interface{})["value"])
}

func TestContactMessages(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)

	w := s.do("POST", "/api/contact", map[string]string{"name": "Ali", "email": "not-an-email", "message": "hi"}, "")
	assert.Equal(t, 400, w.Code)

	w = s.do("POST", "/api/contact", map[string]string{
		"name": "Ali", "email": "ali@example.com", "subject": "Visa", "message": "Do you process visas?",
	}, "")
	require.Equal(t, 201, w.Code)

	w = s.do("GET", "/api/admin/messages", nil, token)
	require.Equal(t, 200, w.Code)
	messages := decode(t, w)["messages"].([]interface{})
	require.Len(t, messages, 1)
	id := uint(messages[0].(map[string]interface{})["id"].(float64))

	w = s.do("PATCH", fmt.Sprintf("/api/admin/messages/%d/read", id), nil, token)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, decode(t, w)["message"].(map[string]interface{})["isRead"])
}

func TestContentCRUD(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)

	w := s.do("POST", "/api/admin/testimonials", map[string]interface{}{
		"customerName": "Maryam", "rating": 6, "comment": "Excellent",
	}, token)
	assert.Equal(t, 400, w.Code)

	w = s.do("POST", "/api/admin/testimonials", map[string]interface{}{
		"customerName": "Maryam", "rating": 5, "comment": "Excellent", "date": "2025-03-01",
	}, token)
	require.Equal(t, 201, w.Code, w.Body.String())

	w = s.do("POST", "/api/admin/services", map[string]interface{}{"title": "Visa processing", "icon": "passport"}, token)
	require.Equal(t, 201, w.Code)
	w = s.do("POST", "/api/admin/gallery", map[string]interface{}{
		"title": "Kaaba at night", "imageUrl": "http://api.test/uploads/gallery/a.png", "category": "makkah",
	}, token)
	require.Equal(t, 201, w.Code)

	w = s.do("GET", "/api/testimonials", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["testimonials"], 1)
	w = s.do("GET", "/api/services", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["services"], 1)
	w = s.do("GET", "/api/gallery?category=madinah", nil, "")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["items"], 0)

	w = s.do("PUT", "/api/admin/services/999", map[string]interface{}{"title": "x"}, token)
	assert.Equal(t, 404, w.Code)

	for _, resource := range []struct{ list, listKey, key string }{
		{"gallery", "items", "item"},
		{"testimonials", "testimonials", "testimonial"},
		{"services", "services", "service"},
	} {
		w = s.do("GET", "/api/admin/"+resource.list, nil, token)
		require.Equal(t, 200, w.Code)
		rows := decode(t, w)[resource.listKey].([]interface{})
		require.Len(t, rows, 1, resource.list)
		id := uint(rows[0].(map[string]interface{})["id"].(float64))

		w = s.do("GET", fmt.Sprintf("/api/admin/%s/%d", resource.list, id), nil, token)
		require.Equal(t, 200, w.Code, resource.list)
		got := decode(t, w)[resource.key].(map[string]interface{})
		assert.EqualValues(t, id, got["id"])

		w = s.do("GET", fmt.Sprintf("/api/admin/%s/999", resource.list), nil, token)
		assert.Equal(t, 404, w.Code, resource.list)
	}
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)

	w := s.do("GET", "/api/admin/preferences", nil, token)
	require.Equal(t, 200, w.Code)
	prefs := decode(t, w)["preferences"].(map[string]interface{})
	assert.Equal(t, false, prefs["darkMode"])
	assert.Equal(t, true, prefs["bookingAlerts"])

	w = s.do("PUT", "/api/admin/preferences", map[string]bool{"darkMode": true}, token)
	require.Equal(t, 200, w.Code)

	w = s.do("GET", "/api/admin/preferences", nil, token)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, decode(t, w)["preferences"].(map[string]interface{})["darkMode"])
}

func TestImageUpload(t *testing.T) {
	s := newTestServer(t)
	_, token := s.admin("editor", models.RoleEditor)

	upload := func(bucket string, content []byte) *httptest.ResponseRecorder {
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		require.NoError(t, mw.WriteField("bucket", bucket))
		part, err := mw.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", "/api/admin/uploads", body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	w := upload("gallery", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(decode(t, w)["url"].(string), "http://api.test/uploads/gallery/"))

	w = upload("passports", png)
	assert.Equal(t, 400, w.Code)

	w = upload("gallery", []byte("plain text"))
	assert.Equal(t, 400, w.Code)
}
