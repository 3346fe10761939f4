package gateway

// Inbound and outbound frame shapes of the JSON-over-websocket protocol.

const (
	msgTypeLogin = "login"
	msgTypeAdmin = "admin"
	msgTypeBid   = "bid"
	msgTypeTeam  = "team"

	msgTypeHello       = "hello"
	msgTypeLoginOK     = "login_ok"
	msgTypeLoginFailed = "login_failed"
	msgTypeState       = "state"
	msgTypeError       = "error"
)

// Admin actions.
const (
	actionStart        = "start"
	actionStartNext    = "startNext"
	actionPause        = "pause"
	actionSetPlayer    = "setPlayer"
	actionNext         = "next"
	actionCloseAndSell = "closeAndSell"
	actionMarkUnsold   = "markUnsold"
	actionResetAll     = "resetAll"
)

// Team actions.
const (
	actionSetName = "setName"
)

type inbound struct {
	Type   string `json:"type"`
	Role   string `json:"role,omitempty"`
	TeamID string `json:"teamId,omitempty"`
	Pass   string `json:"pass,omitempty"`
	Action string `json:"action,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Name   string `json:"name,omitempty"`
	Player string `json:"player,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type helloPayload struct {
	Message string `json:"message"`
}

type loginOKPayload struct {
	Role   Role    `json:"role"`
	TeamID *string `json:"teamId"`
}
