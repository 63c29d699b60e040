package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", Ping)

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "pong", response["message"])
}

func TestGetPlayer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/players/:player_id", GetPlayer(db))

	mock.ExpectQuery(`SELECT \* FROM "players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "display_name"}).
			AddRow("p1", "alice"))

	req, _ := http.NewRequest("GET", "/players/p1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["player"]["display_name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlayerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/players/:player_id", GetPlayer(db))

	mock.ExpectQuery(`SELECT \* FROM "players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "display_name"}))

	req, _ := http.NewRequest("GET", "/players/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomInfoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/rooms/:room_id", GetRoomInfo(db))

	mock.ExpectQuery(`SELECT \* FROM "rooms"`).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}))

	req, _ := http.NewRequest("GET", "/rooms/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomEnded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.POST("/rooms/join", JoinRoom(db))

	mock.ExpectQuery(`SELECT \* FROM "rooms"`).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_code", "status"}).
			AddRow("r1", "ABCDE", "ended"))

	body := `{"room_code":"abcde","display_name":"bob"}`
	req, _ := http.NewRequest("POST", "/rooms/join", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "ended")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCards(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/cards", ListCards(db))

	mock.ExpectQuery(`SELECT \* FROM "cards"`).
		WillReturnRows(sqlmock.NewRows([]string{"card_id", "card_type", "card_text", "expansion", "is_active"}).
			AddRow(1, "truth", "Tell a secret", "core", true).
			AddRow(2, "dare", "Sing a song", "core", true))

	req, _ := http.NewRequest("GET", "/cards?expansions=core", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Cards []map[string]interface{} `json:"cards"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Cards, 2)
	assert.Equal(t, "truth", response.Cards[0]["card_type"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeleteCard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.DELETE("/admin/cards/:card_id", AdminDeleteCard(db))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req, _ := http.NewRequest("DELETE", "/admin/cards/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeleteCardNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.DELETE("/admin/cards/:card_id", AdminDeleteCard(db))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req, _ := http.NewRequest("DELETE", "/admin/cards/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
