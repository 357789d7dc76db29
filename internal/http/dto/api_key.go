package dto

import "basegraph.app/backoffice/internal/model"

type APIKeyListResponse struct {
	APIKeys []model.APIKey `json:"apiKeys"`
}

func ToAPIKeyList(keys []model.APIKey) APIKeyListResponse {
	if keys == nil {
		keys = []model.APIKey{}
	}
	return APIKeyListResponse{APIKeys: keys}
}

// APIKeyCreatedResponse is the only response that ever carries the plaintext key.
type APIKeyCreatedResponse struct {
	APIKey model.APIKey `json:"api_key"`
	Key    string       `json:"key"`
}
