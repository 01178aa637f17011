package model

// One evaluated line of a session, in evaluation order.
type SessionLine struct {
	ID int64 `json:"id" gorm:"primarykey"`
	// Session the line was evaluated against.
	SessionID string `json:"session_id" gorm:"index:idx_session_id"`
	Line      string `json:"line"`
	// Accumulator after the line.
	Value string `json:"value"`
	// Comma-separated diagnostic kinds, empty when the line was clean.
	Diagnostics string `json:"diagnostics"`
	CreatedAt   int64  `json:"created_at"`
}

func (SessionLine) TableName() string {
	return "session_line"
}
