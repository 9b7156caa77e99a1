package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub_backend/internals/configs"
	userModel "talenthub_backend/internals/features/users/user/model"
)

func testApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))

	app := fiber.New()
	ctrl := NewAuthController(db)
	app.Post("/register", ctrl.Register)
	app.Post("/login", ctrl.Login)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := testApp(t)

	status, body := postJSON(t, app, "/register",
		`{"user_name":"Ada","user_email":"ADA@Example.com","user_password":"hunter2hunter2","user_role":"DEVELOPER"}`)
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "ada@example.com", data["user_email"])
	assert.Equal(t, "DEVELOPER", data["user_role"])
	// The password hash never leaves the server.
	_, leaked := data["user_password_hash"]
	assert.False(t, leaked)

	status, body = postJSON(t, app, "/login",
		`{"user_email":"ada@example.com","user_password":"hunter2hunter2"}`)
	require.Equal(t, fiber.StatusOK, status)
	login := body["data"].(map[string]any)
	assert.NotEmpty(t, login["access_token"])
	assert.Equal(t, "Bearer", login["token_type"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := testApp(t)

	payload := `{"user_name":"Ada","user_email":"ada@example.com","user_password":"hunter2hunter2"}`
	status, _ := postJSON(t, app, "/register", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := postJSON(t, app, "/register", payload)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["error_code"])
}

func TestRegisterValidation(t *testing.T) {
	app, _ := testApp(t)

	status, body := postJSON(t, app, "/register",
		`{"user_name":"A","user_email":"not-an-email","user_password":"short"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestLoginUniformFailure(t *testing.T) {
	app, _ := testApp(t)

	status, _ := postJSON(t, app, "/register",
		`{"user_name":"Ada","user_email":"ada@example.com","user_password":"hunter2hunter2"}`)
	require.Equal(t, fiber.StatusCreated, status)

	// Unknown email and wrong password answer identically.
	status, body := postJSON(t, app, "/login",
		`{"user_email":"nobody@example.com","user_password":"hunter2hunter2"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	unknownMsg := body["message"]

	status, body = postJSON(t, app, "/login",
		`{"user_email":"ada@example.com","user_password":"wrong-password"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, unknownMsg, body["message"])
}

func TestLoginDeactivatedAccount(t *testing.T) {
	app, db := testApp(t)

	status, _ := postJSON(t, app, "/register",
		`{"user_name":"Ada","user_email":"ada@example.com","user_password":"hunter2hunter2"}`)
	require.Equal(t, fiber.StatusCreated, status)

	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("user_email = ?", "ada@example.com").
		Update("user_is_active", false).Error)

	status, _ = postJSON(t, app, "/login",
		`{"user_email":"ada@example.com","user_password":"hunter2hunter2"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
}
