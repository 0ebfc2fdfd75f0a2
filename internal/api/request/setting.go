package request

// SetSettingRequest is the body for PUT /api/system/settings/{key}.
type SetSettingRequest struct {
	Value     string `json:"value"`
	Encrypted bool   `json:"encrypted"`
}
