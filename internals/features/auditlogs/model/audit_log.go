package model

import "time"

type Action string

const (
	ActionInsert  Action = "INSERT"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionExecute Action = "EXECUTE"
)

var actionLabels = map[Action]string{
	ActionInsert:  "Created",
	ActionUpdate:  "Updated",
	ActionDelete:  "Deleted",
	ActionExecute: "Executed",
}

func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

// Entry: satu mutasi yang berhasil (status < 400).
type Entry struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Resource  string    `json:"resource"`
	RecordID  string    `json:"record_id,omitempty"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Actor     string    `json:"actor"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
