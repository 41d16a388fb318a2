package ws

// clientFrame is every frame a client may send. Type selects the action;
// the remaining fields are populated per type.
type clientFrame struct {
	Type     string `json:"type"`               // "init" | "msg"
	Action   string `json:"action,omitempty"`   // init: "create" | "join"
	Username string `json:"username,omitempty"` // init
	RoomID   string `json:"roomId,omitempty"`   // init (join)
	Text     string `json:"text,omitempty"`     // msg
}

// serverFrame is every frame the server may send.
type serverFrame struct {
	Type    string   `json:"type"`
	RoomID  string   `json:"roomId,omitempty"`
	Text    string   `json:"text,omitempty"`
	History []string `json:"history,omitempty"`
	Warning string   `json:"warning,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Stable error/warning catalog; these strings go over the wire as-is.
const (
	errInvalidUsername = "invalid username"
	errInvalidMsgType  = "invalid message type"
	errNotInRoom       = "not in room"
	errInvalidMsg      = "invalid message"
	errInvalidRoomID   = "invalid room id"

	// Kept for clients that still match on it; nothing emits this anymore.
	errInvalidInitState = "invalid init state"

	warnAlreadyInitialized = "user already initialized"
	warnNotInitialized     = "user not yet initialized"
	warnHistoryFailed      = "fetching history failed"
)

// ─────────────────────────── message templates ──────────────────────────────

func joinLine(username string) string {
	return username + " has joined the room."
}

func chatLine(username, text string) string {
	return username + ": " + text
}

func sendInfo(c conn, roomID string) {
	_ = c.writeJSON(serverFrame{Type: "info", RoomID: roomID})
}

func sendMsg(c conn, text string) {
	_ = c.writeJSON(serverFrame{Type: "msg", Text: text})
}

func sendHistory(c conn, lines []string) {
	_ = c.writeJSON(serverFrame{Type: "history", History: lines})
}

func sendWarning(c conn, warning string) {
	_ = c.writeJSON(serverFrame{Type: "warning", Warning: warning})
}

// sendError is fatal: the connection is closed right after the frame.
func sendError(c conn, errText string) {
	_ = c.writeJSON(serverFrame{Type: "error", Error: errText})
	c.close()
}
