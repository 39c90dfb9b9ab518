package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"relieffund/config"
	"relieffund/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser 测试用：模拟 JWT 中间件写入的用户上下文
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestBeneficiaryHandler_GetDashboard(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	approvedAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	activityLog := fmt.Sprintf(`[{"action":"created","details":"后台开通","timestamp":%d},{"action":"approved","details":"审批通过","timestamp":%d}]`,
		approvedAt.Add(-48*time.Hour).Unix(), approvedAt.Unix())

	// 受助人档案
	mock.ExpectQuery("SELECT .* FROM `beneficiaries`").
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "beneficiary_code", "full_name", "user_id", "campaign_id", "status", "activity_log", "created_at", "updated_at", "deleted_at"}).
			AddRow(9, "BNF-2024-0009", "张三", 42, 5, models.BeneficiaryStatusApproved, []byte(activityLog), time.Now(), time.Now(), nil))

	// 项目：食品超限消费后应被钳制为 0
	mock.ExpectQuery("SELECT .* FROM `campaigns`").
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "status", "categories", "category_max_limits", "beneficiary_cap", "organisation_id"}).
			AddRow(5, "洪灾救助", "华南", models.CampaignStatusActive,
				[]byte(`["食品","药品"]`), []byte(`{"食品":500,"药品":300}`), 1000.0, 3))

	// 审批机构
	mock.ExpectQuery("SELECT .* FROM `organisations`").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "红十字会华南分会"))

	// 已批准商户
	mock.ExpectQuery("SELECT `store_name` FROM `vendors`").
		WithArgs(uint(5), models.VendorStatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"store_name"}).AddRow("民生超市").AddRow("康宁药店"))

	// 交易记录（倒序）
	txTime := time.Date(2024, 4, 1, 12, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "beneficiary_id", "vendor_id", "category", "amount", "status", "transaction_time", "created_at", "deleted_at"}).
			AddRow(101, 9, 7, "食品", 400.0, "paid", txTime, txTime, nil).
			AddRow(100, 9, 7, "食品", 200.0, "paid", txTime.Add(-24*time.Hour), txTime, nil))

	// Preload 商户
	mock.ExpectQuery("SELECT .* FROM `vendors`").
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "store_name"}).AddRow(7, "民生超市"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBeneficiaryHandler()
	router.GET("/dashboard", asUser(42, models.RoleBeneficiary), h.GetDashboard)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Code int               `json:"code"`
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)

	d := resp.Data
	assert.Equal(t, "BNF-2024-0009", d.Beneficiary.BeneficiaryCode)
	assert.Equal(t, "洪灾救助", d.Campaign.Name)
	assert.Equal(t, "红十字会华南分会", d.Approver)
	require.NotNil(t, d.ApprovalDate)
	assert.Equal(t, approvedAt.Unix(), d.ApprovalDate.Unix())
	assert.Equal(t, []string{"食品", "药品"}, d.Categories)
	assert.Equal(t, []string{"民生超市", "康宁药店"}, d.Stores)
	assert.Equal(t, 1000.0, d.TotalLimit)
	assert.Equal(t, 600.0, d.TotalSpent)

	// 余额按限额键计算：食品超限钳制为 0，药品未消费保持全额
	require.Len(t, d.Balances, 2)
	assert.Equal(t, "食品", d.Balances[0].Label)
	assert.Equal(t, 0.0, d.Balances[0].Remaining)
	assert.Equal(t, "药品", d.Balances[1].Label)
	assert.Equal(t, 300.0, d.Balances[1].Remaining)

	// 历史倒序、日期格式化
	require.Len(t, d.History, 2)
	assert.Equal(t, "民生超市", d.History[0].Store)
	assert.Equal(t, "01 Apr 2024", d.History[0].Date)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBeneficiaryHandler_GetDashboard_NoProfile(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `beneficiaries`").
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBeneficiaryHandler()
	router.GET("/dashboard", asUser(42, models.RoleBeneficiary), h.GetDashboard)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBeneficiaryHandler_GetDashboard_CampaignMissing(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// 受助人存在但项目已不可加载：元数据降级为空，不报错
	mock.ExpectQuery("SELECT .* FROM `beneficiaries`").
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "beneficiary_code", "full_name", "user_id", "campaign_id", "status"}).
			AddRow(9, "BNF-2024-0009", "张三", 42, 5, models.BeneficiaryStatusPending))

	mock.ExpectQuery("SELECT .* FROM `campaigns`").
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBeneficiaryHandler()
	router.GET("/dashboard", asUser(42, models.RoleBeneficiary), h.GetDashboard)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Code int               `json:"code"`
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(0), resp.Data.Campaign.ID)
	assert.Empty(t, resp.Data.Approver)
	assert.Nil(t, resp.Data.ApprovalDate)
	assert.Equal(t, []string{}, resp.Data.Categories)
	assert.Equal(t, []string{}, resp.Data.Stores)
	assert.Equal(t, 0.0, resp.Data.TotalLimit)
	assert.NotNil(t, resp.Data.Balances)
	assert.Len(t, resp.Data.Balances, 0)

	require.NoError(t, mock.ExpectationsWereMet())
}
