package redemption

// ===========================
// 兌換狀態機
// ===========================

// Status 兌換狀態
//
//	pending ──▶ processing ──▶ completed
//	   │             │
//	   ├─────────────┴──────▶ failed
//	   └──────────────────▶ completed
//
// completed 與 failed 是終結狀態。
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// ParseStatus 解析狀態字串
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return st, nil
	}
	return "", ErrInvalidStatus.WithContext("status", s)
}

// IsTerminal 是否為終結狀態
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo 狀態機是否允許 s → next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
