// Package metrics Prometheus 指標
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Redemptions 兌換結果（依最終狀態與動作類型）
	Redemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_points_redemptions_total",
			Help: "Redemptions by resulting status and action type",
		},
		[]string{"status", "action_type"},
	)
	// RedemptionRejections 兌換在扣款前被拒絕（依錯誤分類）
	RedemptionRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_points_redemption_rejections_total",
			Help: "Redemption attempts rejected before debit, by error kind",
		},
		[]string{"kind"},
	)
	// LedgerOperations 帳本操作（依操作與結果）
	LedgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_points_ledger_operations_total",
			Help: "Ledger operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	// HTTPRequests HTTP 請求（依路由與狀態碼）
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_points_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)
	// RateLimited 被限流擋下的請求
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_points_rate_limited_total",
			Help: "Requests blocked by the rate limiter",
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(Redemptions)
	prometheus.MustRegister(RedemptionRejections)
	prometheus.MustRegister(LedgerOperations)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(RateLimited)
}

// Outcome 將錯誤轉為 outcome 標籤
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
