package model

// Record is a self-reported attendance record as the record store returns
// it. The store keeps records loosely typed: which fields are present
// depends on the form the operator filled in, and Category may be the
// generic 勤怠 label. internal/selfreport resolves the shape into an
// EventType.
type Record struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"` // ISO-8601, set by the store on append
	UserName  string  `json:"userName"`
	Category  string  `json:"category,omitempty"`
	Type      string  `json:"type,omitempty"`      // 遅刻 / 早退 / 中抜け / 有給 / 代休
	Date      string  `json:"date,omitempty"`      // time-type forms
	StartDate string  `json:"startDate,omitempty"` // paid-leave forms
	LeaveDate string  `json:"leaveDate,omitempty"` // comp-leave forms
	Days      float64 `json:"days,omitempty"`
	Minutes   string  `json:"minutes,omitempty"` // stored as string by the forms
	Reason    string  `json:"reason,omitempty"`
	Note      string  `json:"note,omitempty"`
}
