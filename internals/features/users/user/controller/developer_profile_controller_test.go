package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userModel "talenthub_backend/internals/features/users/user/model"
)

func testApp(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.EducationEntryModel{},
		&userModel.PortfolioItemModel{},
	))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("user_role", "DEVELOPER")
		return c.Next()
	})

	ctrl := NewDeveloperProfileController(db)
	app.Patch("/users/me/education/:entryId", ctrl.UpdateEducation)
	app.Patch("/users/me/portfolio/:itemId", ctrl.UpdatePortfolio)
	return app, db
}

func patchJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("PATCH", path, strings.NewReader(body))
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

func TestUpdateEducation(t *testing.T) {
	userID := uuid.New()
	app, db := testApp(t, userID)

	start := 2015
	entry := userModel.EducationEntryModel{
		EducationEntryUserID:      userID,
		EducationEntryInstitution: "Old U",
		EducationEntryStartYear:   &start,
	}
	require.NoError(t, db.Create(&entry).Error)

	status, body := patchJSON(t, app,
		"/users/me/education/"+entry.EducationEntryID.String(),
		`{"education_entry_institution":"New U","education_entry_end_year":2019}`)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "New U", data["education_entry_institution"])
	assert.EqualValues(t, 2019, data["education_entry_end_year"])
	// Untouched fields survive the partial update.
	assert.EqualValues(t, 2015, data["education_entry_start_year"])

	// End year before start year is rejected.
	status, body = patchJSON(t, app,
		"/users/me/education/"+entry.EducationEntryID.String(),
		`{"education_entry_end_year":2010}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestUpdateEducationOwnershipAndMiss(t *testing.T) {
	userID := uuid.New()
	app, db := testApp(t, userID)

	other := userModel.EducationEntryModel{
		EducationEntryUserID:      uuid.New(),
		EducationEntryInstitution: "Someone Else U",
	}
	require.NoError(t, db.Create(&other).Error)

	// Another user's entry reads as absent.
	status, body := patchJSON(t, app,
		"/users/me/education/"+other.EducationEntryID.String(),
		`{"education_entry_institution":"Hijacked"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["error_code"])

	status, _ = patchJSON(t, app,
		"/users/me/education/"+uuid.NewString(),
		`{"education_entry_institution":"Nowhere"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdatePortfolio(t *testing.T) {
	userID := uuid.New()
	app, db := testApp(t, userID)

	url := "https://old.example.com"
	item := userModel.PortfolioItemModel{
		PortfolioItemUserID: userID,
		PortfolioItemTitle:  "old title",
		PortfolioItemURL:    &url,
	}
	require.NoError(t, db.Create(&item).Error)

	status, body := patchJSON(t, app,
		"/users/me/portfolio/"+item.PortfolioItemID.String(),
		`{"portfolio_item_title":"new title","portfolio_item_tags":["go","fiber"]}`)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "new title", data["portfolio_item_title"])
	assert.Equal(t, "https://old.example.com", data["portfolio_item_url"])
	assert.Equal(t, []any{"go", "fiber"}, data["portfolio_item_tags"])

	status, body = patchJSON(t, app,
		"/users/me/portfolio/"+item.PortfolioItemID.String(),
		`{"portfolio_item_url":"not a url"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}
