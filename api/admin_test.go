package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relieffund/adminauth"
	"relieffund/config"
	"relieffund/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret"},
		Email:  config.EmailConfig{Enabled: false},
	}
}

func TestAdminHandler_AdminLogin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("admin", "admin").
		WillReturnRows(userRows().
			AddRow(1, "admin", string(hashed), "", models.RoleAdmin, models.UserStatusActive, time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAdminHandler(cfg)
	router.POST("/admin/login", h.AdminLogin)

	body := `{"username":"admin","password":"admin123"}`
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	// admin_user_id cookie 必须带签名且可验证
	var signedCookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_user_id" {
			signedCookie = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, signedCookie)
	value, err := adminauth.VerifyCookieValue(signedCookie)
	require.NoError(t, err)
	assert.Equal(t, "1", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_AdminLogin_NonBackofficeRole(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("donor1", "donor1").
		WillReturnRows(userRows().
			AddRow(2, "donor1", string(hashed), "", models.RoleDonor, models.UserStatusActive, time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAdminHandler(cfg)
	router.POST("/admin/login", h.AdminLogin)

	body := `{"username":"donor1","password":"password123"}`
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 捐赠人无后台权限
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_UpdateBeneficiaryStatus_Approve(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// 当前登录管理员
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1)).
		WillReturnRows(userRows().
			AddRow(1, "admin", "hash", "", models.RoleAdmin, models.UserStatusActive, time.Now(), time.Now(), nil))

	// 受助人档案
	mock.ExpectQuery("SELECT .* FROM `beneficiaries`").
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "beneficiary_code", "full_name", "user_id", "campaign_id", "status", "activity_log"}).
			AddRow(9, "BNF-2024-0009", "张三", 42, 5, models.BeneficiaryStatusPending, []byte(`[{"action":"created","details":"后台开通","timestamp":1700000000}]`)))

	// 状态与日志更新
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `beneficiaries`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 审批邮件：受助人账号无邮箱，跳过发送
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(42)).
		WillReturnRows(userRows().
			AddRow(42, "zhangsan", "hash", "", models.RoleBeneficiary, models.UserStatusActive, time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAdminHandler(cfg)
	router.PUT("/admin/beneficiaries/:id/status", h.UpdateBeneficiaryStatus)

	body := `{"status":"approved","details":"审批通过"}`
	req := httptest.NewRequest("PUT", "/admin/beneficiaries/9/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "admin_user_id", Value: adminauth.SignCookieValue("1")})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, models.BeneficiaryStatusApproved, data["status"])

	// 日志追加了批准记录
	log := data["activity_log"].([]interface{})
	require.Len(t, log, 2)
	last := log[1].(map[string]interface{})
	assert.Equal(t, models.BeneficiaryActionApproved, last["action"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_UpdateBeneficiaryStatus_Unauthenticated(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAdminHandler(cfg)
	router.PUT("/admin/beneficiaries/:id/status", h.UpdateBeneficiaryStatus)

	// 裸值 Cookie（未签名）视为未登录
	body := `{"status":"approved"}`
	req := httptest.NewRequest("PUT", "/admin/beneficiaries/9/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "admin_user_id", Value: "1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCampaignHandler_Create_CategoryNotInCatalog(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := adminTestConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// 机构存在
	mock.ExpectQuery("SELECT .* FROM `organisations`").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "红十字会华南分会"))

	// 类别目录中无"珠宝"
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs("珠宝").
		WillReturnRows(sqlmock.NewRows([]string{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCampaignHandler()
	router.POST("/admin/campaigns", h.Create)

	body := `{"name":"测试项目","organisation_id":3,"categories":["珠宝"],"category_max_limits":{"珠宝":100}}`
	req := httptest.NewRequest("POST", "/admin/campaigns", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "珠宝")
	require.NoError(t, mock.ExpectationsWereMet())
}
