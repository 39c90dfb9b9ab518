package service

import (
	"errors"
	"fmt"
	"sort"

	"relieffund/models"
)

// 余额计算是整个系统的核心：把项目的类别限额和受助人的历史交易
// 折算成各类别剩余可用金额。函数全部为纯函数，不触达数据库，
// 由调用方（仪表盘接口、收款接口）负责取数。

// Balance 单类别余额（派生数据，不落库）
type Balance struct {
	Label     string  `json:"label"`
	Limit     float64 `json:"limit"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// HistoryItem 仪表盘交易历史条目
type HistoryItem struct {
	Store    string  `json:"store"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // 格式: 02 Jan 2006
	Status   string  `json:"status"`
}

// 收款校验错误
var (
	// ErrCampaignNotActive 项目已暂停或结束
	ErrCampaignNotActive = errors.New("项目当前不可消费")
	// ErrCategoryNotConfigured 类别未配置限额
	ErrCategoryNotConfigured = errors.New("该类别未配置限额")
	// ErrOverCategoryLimit 超出类别剩余额度
	ErrOverCategoryLimit = errors.New("超出该类别剩余额度")
	// ErrOverBeneficiaryCap 超出受助人总限额
	ErrOverBeneficiaryCap = errors.New("超出受助人总限额")
)

// CampaignLimits 读取项目的类别列表与限额映射
// 项目不存在（nil）或限额结构缺失时返回空值，调用方按零限额处理，不报错
func CampaignLimits(campaign *models.Campaign) ([]string, models.AmountMap) {
	if campaign == nil {
		return nil, models.AmountMap{}
	}
	limits := campaign.CategoryMaxLimits
	if limits == nil {
		limits = models.AmountMap{}
	}
	return campaign.Categories, limits
}

// AggregateSpending 单次遍历交易列表，同时产出按类别汇总和总支出
// 没有交易的类别不会出现在映射中（由 ComputeBalances 按 0 处理）；
// 金额异常（NaN/负数传染）不在此防御，落库前已校验非负
func AggregateSpending(txs []models.Transaction) (models.AmountMap, float64) {
	spentByCategory := models.AmountMap{}
	var totalSpent float64
	for _, tx := range txs {
		spentByCategory[tx.Category] += tx.Amount
		totalSpent += tx.Amount
	}
	return spentByCategory, totalSpent
}

// ComputeBalances 计算各类别余额
// 遍历对象是限额映射的键集合而非类别列表：配置了限额但已从类别列表移除的
// 类别仍出现在余额中。输出顺序按项目类别列表优先，其余键按字典序，保证稳定。
// 剩余额度恒不为负：超支类别显示为 0，绝不向受助人展示负的"可用金额"。
func ComputeBalances(categories []string, limits, spentByCategory models.AmountMap) []Balance {
	if len(limits) == 0 {
		return []Balance{}
	}

	seen := make(map[string]bool, len(limits))
	ordered := make([]string, 0, len(limits))
	for _, label := range categories {
		if _, ok := limits[label]; ok && !seen[label] {
			ordered = append(ordered, label)
			seen[label] = true
		}
	}
	var rest []string
	for label := range limits {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	balances := make([]Balance, 0, len(ordered))
	for _, label := range ordered {
		limit := limits[label]
		spent := spentByCategory[label]
		remaining := limit - spent
		if remaining < 0 {
			remaining = 0
		}
		balances = append(balances, Balance{
			Label:     label,
			Limit:     limit,
			Spent:     spent,
			Remaining: remaining,
		})
	}
	return balances
}

// CheckPurchase 收款前校验：项目状态、类别限额、受助人总限额
// spentByCategory/totalSpent 为该受助人的历史汇总（不含本笔）
func CheckPurchase(campaign *models.Campaign, spentByCategory models.AmountMap, totalSpent float64, category string, amount float64) error {
	if campaign == nil || campaign.Status != models.CampaignStatusActive {
		return ErrCampaignNotActive
	}

	_, limits := CampaignLimits(campaign)
	limit, ok := limits[category]
	if !ok {
		return ErrCategoryNotConfigured
	}
	if spentByCategory[category]+amount > limit {
		return fmt.Errorf("%w（剩余 %.2f）", ErrOverCategoryLimit, remainingOf(limit, spentByCategory[category]))
	}
	if campaign.BeneficiaryCap > 0 && totalSpent+amount > campaign.BeneficiaryCap {
		return fmt.Errorf("%w（剩余 %.2f）", ErrOverBeneficiaryCap, remainingOf(campaign.BeneficiaryCap, totalSpent))
	}
	return nil
}

func remainingOf(limit, spent float64) float64 {
	if spent >= limit {
		return 0
	}
	return limit - spent
}

// BuildHistory 把交易列表整理为仪表盘历史（调用方保证已按时间倒序），
// 最多保留 maxItems 条。店铺名从预加载的 Vendor 读取。
func BuildHistory(txs []models.Transaction, maxItems int) []HistoryItem {
	if maxItems > 0 && len(txs) > maxItems {
		txs = txs[:maxItems]
	}
	history := make([]HistoryItem, 0, len(txs))
	for _, tx := range txs {
		status := tx.Status
		if status == "" {
			status = models.TransactionStatusPaid
		}
		history = append(history, HistoryItem{
			Store:    tx.Vendor.StoreName,
			Category: tx.Category,
			Amount:   tx.Amount,
			Date:     tx.TransactionTime.Format("02 Jan 2006"),
			Status:   status,
		})
	}
	return history
}
