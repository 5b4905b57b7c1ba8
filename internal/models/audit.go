package models

// AuditAction names an event recorded in the audit log.
type AuditAction string

const (
	ActionEntryCreated      AuditAction = "entry_created"
	ActionEntryViewed       AuditAction = "entry_viewed"
	ActionEntryDeleted      AuditAction = "entry_deleted"
	// ActionAICalled is never recorded here; it labels records found in
	// audit logs written by the browser journal.
	ActionAICalled          AuditAction = "ai_called"
	ActionAppUnlocked       AuditAction = "app_unlocked"
	ActionAppLocked         AuditAction = "app_locked"
	ActionPassphraseCreated AuditAction = "passphrase_created"
	ActionPassphraseChanged AuditAction = "passphrase_changed"
	ActionDataExported      AuditAction = "data_exported"
	ActionDataDeleted       AuditAction = "data_deleted"
)

var actionLabels = map[AuditAction]string{
	ActionEntryCreated:      "📝 Entry Created",
	ActionEntryViewed:       "👁️ Entry Viewed",
	ActionEntryDeleted:      "🗑️ Entry Deleted",
	ActionAICalled:          "🤖 AI Called",
	ActionAppUnlocked:       "🔓 App Unlocked",
	ActionAppLocked:         "🔒 App Locked",
	ActionPassphraseCreated: "🔑 Passphrase Created",
	ActionPassphraseChanged: "🔄 Passphrase Changed",
	ActionDataExported:      "📤 Data Exported",
	ActionDataDeleted:       "⚠️ All Data Deleted",
}

// Label returns a human readable label, falling back to the raw action.
func (a AuditAction) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

// AuditLogEntry is one record of the audit log. Details never carry entry
// content or secrets.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
}
