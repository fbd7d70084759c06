package dto

type ActionResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Details   string `json:"details"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	CreatedAt string `json:"created_at"`
}
