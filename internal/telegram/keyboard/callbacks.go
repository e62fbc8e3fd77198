package keyboard

import (
	"fmt"
	"strings"
)

// Telegram rejects callback data longer than this
const maxCallbackData = 64

// CallbackData is an inline button payload split into action and value
type CallbackData struct {
	Action string
	Value  string
}

func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || value == "" {
		return nil, fmt.Errorf("invalid callback format: %q", data)
	}

	switch action {
	case ActionDownload, ActionLanguage, ActionCommand:
	default:
		return nil, fmt.Errorf("unknown callback action: %q", action)
	}

	return &CallbackData{Action: action, Value: value}, nil
}

// EncodeCallback panics on payloads Telegram would refuse, all of which are built from constants.
func EncodeCallback(action, value string) string {
	data := action + ":" + value
	if len(data) > maxCallbackData {
		panic(fmt.Sprintf("callback data too long: %q", data))
	}
	return data
}
