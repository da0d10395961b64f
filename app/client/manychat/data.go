package manychat

import "encoding/json"

type Flow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FolderID string `json:"folder_id"`
	Status   string `json:"status"`
}

type CustomField struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// BotField is a page-level variable of the ManyChat bot. Value can be a
// string, number or bool depending on the field type.
type BotField struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Value       json.RawMessage `json:"value"`
}

type flowsResponse struct {
	Data struct {
		Flows []Flow `json:"flows"`
	} `json:"data"`
}

type customFieldsResponse struct {
	Data []CustomField `json:"data"`
}

type botFieldsResponse struct {
	Data []BotField `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}
